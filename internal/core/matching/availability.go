package matching

import (
	"math"

	"pantry-recommender/internal/core/recipe"
)

// PartialCredit 每個部分匹配食材的額外加分比例
const PartialCredit = 0.2

// MissingIngredient 庫存中找不到的必要食材
type MissingIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// PartialMatch 庫存中有，但數量不足的必要食材
type PartialMatch struct {
	Name      string  `json:"name"`
	Required  float64 `json:"required"`
	Available float64 `json:"available"`
	Unit      string  `json:"unit"`
}

// Shortfall 缺少的數量
func (p PartialMatch) Shortfall() float64 {
	return math.Max(0, p.Required-p.Available)
}

// MatchResult 單一食譜對庫存的可用性評估結果
type MatchResult struct {
	MatchScore         float64             `json:"match_score"`
	AvailableCount     int                 `json:"available_ingredients"`
	TotalRequired      int                 `json:"total_ingredients"`
	MissingIngredients []MissingIngredient `json:"missing_ingredients"`
	PartialMatches     []PartialMatch      `json:"partial_matches"`
	CanCook            bool                `json:"can_cook"`
}

// MissingNames 回傳缺少食材的名稱
func (m *MatchResult) MissingNames() []string {
	names := make([]string, 0, len(m.MissingIngredients))
	for _, mi := range m.MissingIngredients {
		names = append(names, mi.Name)
	}
	return names
}

// Evaluator 食譜可用性評估器，內部不保存任何可變狀態，可並行使用
type Evaluator struct {
	units *Units
}

// NewEvaluator 創建評估器；units 為 nil 時使用內建單位表
func NewEvaluator(units *Units) *Evaluator {
	if units == nil {
		units = defaultUnits
	}
	return &Evaluator{units: units}
}

var defaultEvaluator = NewEvaluator(nil)

// EvaluateAvailability 使用內建單位表評估食譜
func EvaluateAvailability(r *recipe.Recipe, pantry []recipe.PantryItem) MatchResult {
	return defaultEvaluator.Evaluate(r, pantry)
}

// Evaluate 依庫存評估食譜的必要食材。
// 每個必要食材依庫存順序尋找第一個名稱匹配且單位相容的項目：
// 數量足夠計為可用，數量為正但不足計為部分匹配，其餘繼續尋找；
// 都找不到則列入缺少清單。
func (e *Evaluator) Evaluate(r *recipe.Recipe, pantry []recipe.PantryItem) MatchResult {
	result := MatchResult{
		MissingIngredients: make([]MissingIngredient, 0),
		PartialMatches:     make([]PartialMatch, 0),
	}

	required := r.RequiredIngredients()
	result.TotalRequired = len(required)
	if len(required) == 0 {
		return result
	}

	entries := indexPantry(pantry)
	for _, ing := range required {
		name := Normalize(ing.Name)
		need := sanitizeQuantity(ing.Quantity)

		found := false
		for _, entry := range entries {
			if !Matches(name, entry.name) || !e.units.Compatible(ing.Unit, entry.unit) {
				continue
			}
			if entry.quantity >= need {
				result.AvailableCount++
				found = true
				break
			}
			if entry.quantity > 0 {
				result.PartialMatches = append(result.PartialMatches, PartialMatch{
					Name:      ing.Name,
					Required:  need,
					Available: entry.quantity,
					Unit:      ing.Unit,
				})
				found = true
				break
			}
		}

		if !found {
			result.MissingIngredients = append(result.MissingIngredients, MissingIngredient{
				Name:     ing.Name,
				Quantity: need,
				Unit:     ing.Unit,
			})
		}
	}

	total := float64(result.TotalRequired)
	score := float64(result.AvailableCount) / total
	if len(result.PartialMatches) > 0 {
		score = math.Min(1.0, score+float64(len(result.PartialMatches))*PartialCredit/total)
	}
	result.MatchScore = clamp01(score)
	result.CanCook = result.AvailableCount == result.TotalRequired

	return result
}

type pantryEntry struct {
	id       string
	display  string
	name     string
	quantity float64
	unit     string
}

// indexPantry 以正規化名稱去重：位置取第一次出現，內容取最後一次出現
func indexPantry(items []recipe.PantryItem) []pantryEntry {
	entries := make([]pantryEntry, 0, len(items))
	positions := make(map[string]int, len(items))
	for _, item := range items {
		entry := pantryEntry{
			id:       item.ID,
			display:  item.Name,
			name:     Normalize(item.Name),
			quantity: sanitizeQuantity(item.Quantity),
			unit:     item.Unit,
		}
		if pos, ok := positions[entry.name]; ok {
			entries[pos] = entry
			continue
		}
		positions[entry.name] = len(entries)
		entries = append(entries, entry)
	}
	return entries
}

func sanitizeQuantity(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return 0
	}
	return q
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
