package matching

import (
	"pantry-recommender/internal/core/recipe"
)

// Consumption 烹飪後單一庫存項目的變化
type Consumption struct {
	PantryID   string  `json:"pantry_id,omitempty"`
	PantryName string  `json:"pantry_name"`
	Used       float64 `json:"used"`
	Remaining  float64 `json:"remaining"`
	Remove     bool    `json:"remove"`
}

// PlanConsumption 依份數比例計算烹飪食譜會消耗的庫存。
// 每個必要食材從第一個名稱匹配、單位相容且仍有剩餘的庫存項目扣除；
// 同一庫存項目被多個食材使用時累計扣除。剩餘量 <= 0 的項目標記為移除。
// 結果依庫存順序排列，只包含有變化的項目。
func (e *Evaluator) PlanConsumption(r *recipe.Recipe, pantry []recipe.PantryItem, servings int) []Consumption {
	ratio := 1.0
	if servings > 0 && r.Servings > 0 {
		ratio = float64(servings) / float64(r.Servings)
	}

	entries := indexPantry(pantry)
	remaining := make([]float64, len(entries))
	used := make([]float64, len(entries))
	touched := make([]bool, len(entries))
	for i, entry := range entries {
		remaining[i] = entry.quantity
	}

	for _, ing := range r.RequiredIngredients() {
		name := Normalize(ing.Name)
		need := sanitizeQuantity(ing.Quantity) * ratio
		for i, entry := range entries {
			if remaining[i] <= 0 || !Matches(name, entry.name) || !e.units.Compatible(ing.Unit, entry.unit) {
				continue
			}
			remaining[i] -= need
			used[i] += need
			touched[i] = true
			break
		}
	}

	plan := make([]Consumption, 0)
	for i, entry := range entries {
		if !touched[i] {
			continue
		}
		left := remaining[i]
		if left < 0 {
			left = 0
		}
		plan = append(plan, Consumption{
			PantryID:   entry.id,
			PantryName: entry.display,
			Used:       used[i],
			Remaining:  left,
			Remove:     left <= 0,
		})
	}
	return plan
}

// PlanConsumption 使用內建單位表計算消耗
func PlanConsumption(r *recipe.Recipe, pantry []recipe.PantryItem, servings int) []Consumption {
	return defaultEvaluator.PlanConsumption(r, pantry, servings)
}
