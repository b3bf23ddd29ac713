package matching

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary 匹配用的靜態詞表：單位同義群組與飲食限制詞彙
type Vocabulary struct {
	UnitGroups         [][]string `yaml:"unit_groups"`
	MeatTerms          []string   `yaml:"meat_terms"`
	AnimalProductTerms []string   `yaml:"animal_product_terms"`
	VegetarianLabels   []string   `yaml:"vegetarian_labels"`
	VeganLabels        []string   `yaml:"vegan_labels"`
}

// 內建詞表（英文與法文拼寫）
var (
	defaultUnitGroups = [][]string{
		{"unit", "units", "piece", "pieces", "pc", "pcs", "unité", "unités", "unite", "unites", "pièce", "pièces", "pce"},
		{"g", "gram", "grams", "gramme", "grammes", "kg", "kilogram", "kilograms", "kilogramme", "kilogrammes"},
		{"ml", "milliliter", "milliliters", "millilitre", "millilitres", "l", "liter", "liters", "litre", "litres", "cl"},
		{"tablespoon", "tablespoons", "tbsp", "cuillère à soupe", "c. à s.", "càs"},
		{"teaspoon", "teaspoons", "tsp", "cuillère à café", "c. à c.", "càc"},
	}
	defaultMeatTerms          = []string{"meat", "chicken", "beef", "pork", "fish", "viande", "poulet", "bœuf", "boeuf", "porc", "poisson"}
	defaultAnimalProductTerms = []string{"milk", "cheese", "butter", "cream", "egg", "lait", "fromage", "beurre", "crème", "œuf", "oeuf"}
	defaultVegetarianLabels   = []string{"vegetarian", "végétarien", "vegetarien"}
	defaultVeganLabels        = []string{"vegan", "végétalien", "vegetalien", "vegetarian-vegan"}
)

// DefaultVocabulary 回傳內建詞表的副本
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		UnitGroups:         copyGroups(defaultUnitGroups),
		MeatTerms:          copyStrings(defaultMeatTerms),
		AnimalProductTerms: copyStrings(defaultAnimalProductTerms),
		VegetarianLabels:   copyStrings(defaultVegetarianLabels),
		VeganLabels:        copyStrings(defaultVeganLabels),
	}
}

// ParseVocabulary 解析 YAML 詞表，缺少的區段沿用內建值
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	def := DefaultVocabulary()
	if len(v.UnitGroups) == 0 {
		v.UnitGroups = def.UnitGroups
	}
	if len(v.MeatTerms) == 0 {
		v.MeatTerms = def.MeatTerms
	}
	if len(v.AnimalProductTerms) == 0 {
		v.AnimalProductTerms = def.AnimalProductTerms
	}
	if len(v.VegetarianLabels) == 0 {
		v.VegetarianLabels = def.VegetarianLabels
	}
	if len(v.VeganLabels) == 0 {
		v.VeganLabels = def.VeganLabels
	}
	return v, nil
}

// LoadVocabulary 從檔案載入詞表；路徑為空時回傳內建詞表
func LoadVocabulary(path string) (Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyGroups(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, g := range in {
		out[i] = copyStrings(g)
	}
	return out
}
