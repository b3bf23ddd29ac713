package shopping

import (
	"pantry-recommender/internal/core/matching"
	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/pkg/common"
)

// Item 購物清單項目
type Item struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Recipes  []string `json:"recipes,omitempty"`
}

// Planner 依庫存與食譜產生購物清單
type Planner struct {
	evaluator *matching.Evaluator
}

// NewPlanner 創建購物清單產生器；evaluator 為 nil 時使用內建單位表
func NewPlanner(evaluator *matching.Evaluator) *Planner {
	if evaluator == nil {
		evaluator = matching.NewEvaluator(nil)
	}
	return &Planner{evaluator: evaluator}
}

var defaultPlanner = NewPlanner(nil)

// FromMissing 使用內建單位表彙整缺少的食材
func FromMissing(recipes []recipe.Recipe, pantry []recipe.PantryItem) []Item {
	return defaultPlanner.FromMissing(recipes, pantry)
}

// FromRecipe 依份數換算食譜的全部食材
func FromRecipe(r *recipe.Recipe, servings int) ([]Item, error) {
	return defaultPlanner.FromRecipe(r, servings)
}

// FromMissing 對每個食譜評估可用性，依正規化名稱彙整缺少與不足的數量。
// 名稱與單位取第一次出現的值，順序依食譜與食材順序。
func (p *Planner) FromMissing(recipes []recipe.Recipe, pantry []recipe.PantryItem) []Item {
	items := make([]Item, 0)
	index := make(map[string]int)

	add := func(name string, quantity float64, unit, recipeName string) {
		key := matching.Normalize(name)
		if key == "" || quantity <= 0 {
			return
		}
		if pos, ok := index[key]; ok {
			items[pos].Quantity += quantity
			items[pos].Recipes = appendUnique(items[pos].Recipes, recipeName)
			return
		}
		index[key] = len(items)
		items = append(items, Item{Name: name, Quantity: quantity, Unit: unit, Recipes: []string{recipeName}})
	}

	for i := range recipes {
		r := &recipes[i]
		result := p.evaluator.Evaluate(r, pantry)
		for _, mi := range result.MissingIngredients {
			add(mi.Name, mi.Quantity, mi.Unit, r.Name)
		}
		for _, pm := range result.PartialMatches {
			add(pm.Name, pm.Shortfall(), pm.Unit, r.Name)
		}
	}
	return items
}

// FromRecipe 以 servings / recipe.Servings 比例換算所有食材（含選用食材）
func (p *Planner) FromRecipe(r *recipe.Recipe, servings int) ([]Item, error) {
	if len(r.Ingredients) == 0 {
		return nil, common.ErrNoIngredients
	}

	ratio := 1.0
	if servings > 0 && r.Servings > 0 {
		ratio = float64(servings) / float64(r.Servings)
	}

	items := make([]Item, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		items = append(items, Item{
			Name:     ing.Name,
			Quantity: ing.Quantity * ratio,
			Unit:     ing.Unit,
			Recipes:  []string{r.Name},
		})
	}
	return items, nil
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
