package recommend

import (
	"math"

	"pantry-recommender/internal/core/recipe"
)

// 營養評分常數
const (
	NeutralNutritionScore = 0.5

	calorieOptimalBonus = 0.20
	proteinOptimalBonus = 0.15
	goodBonus           = 0.10
)

// NutritionResult 營養評分結果；食譜沒有營養資料時營養欄位為 nil
type NutritionResult struct {
	Score    float64               `json:"score"`
	Calories *float64              `json:"calories,omitempty"`
	Proteins *float64              `json:"proteins,omitempty"`
	Carbs    *float64              `json:"carbs,omitempty"`
	Fats     *float64              `json:"fats,omitempty"`
	GoalsMet map[string]GoalStatus `json:"goals_met"`
}

// NeutralNutrition 未計算營養時使用的中性結果
func NeutralNutrition() NutritionResult {
	return NutritionResult{Score: NeutralNutritionScore, GoalsMet: map[string]GoalStatus{}}
}

// ScoreNutrition 依每日目標為食譜的每份營養評分。
// 只評估熱量與蛋白質：佔每日目標 20%–40% 為 optimal，10%–50% 為 good，其餘為 outside_range。
func ScoreNutrition(r *recipe.Recipe, prefs *recipe.Preferences) NutritionResult {
	if r.Nutrition == nil {
		return NeutralNutrition()
	}

	n := *r.Nutrition
	result := NutritionResult{
		Score:    NeutralNutritionScore,
		Calories: &n.Calories,
		Proteins: &n.Proteins,
		Carbs:    &n.Carbohydrates,
		Fats:     &n.Fats,
		GoalsMet: map[string]GoalStatus{},
	}

	if prefs != nil {
		result.Score += scoreGoal(result.GoalsMet, "calories", n.Calories, prefs.DailyCalorieGoal, calorieOptimalBonus)
		result.Score += scoreGoal(result.GoalsMet, "proteins", n.Proteins, prefs.DailyProteinGoal, proteinOptimalBonus)
	}

	result.Score = math.Min(1.0, result.Score)
	return result
}

func scoreGoal(goals map[string]GoalStatus, key string, value float64, goal *float64, optimalBonus float64) float64 {
	if goal == nil || *goal <= 0 {
		return 0
	}

	ratio := value / *goal
	switch {
	case ratio >= 0.2 && ratio <= 0.4:
		goals[key] = GoalOptimal
		return optimalBonus
	case ratio >= 0.1 && ratio <= 0.5:
		goals[key] = GoalGood
		return goodBonus
	default:
		goals[key] = GoalOutsideRange
		return 0
	}
}
