package recommend

import (
	"fmt"
	"math"

	"pantry-recommender/internal/core/matching"
	"pantry-recommender/internal/pkg/common"
)

// 排名常數
const (
	DefaultLimit = 10
	MaxLimit     = 50

	MatchWeight     = 0.6
	NutritionWeight = 0.4
)

// Options 推薦參數
type Options struct {
	Limit              int     `json:"limit"`
	MinMatchScore      float64 `json:"min_match_score"`
	IncludeNutrition   bool    `json:"include_nutrition"`
	IncludePreferences bool    `json:"include_preferences"`
}

// DefaultOptions 回傳預設推薦參數
func DefaultOptions() Options {
	return Options{
		Limit:              DefaultLimit,
		MinMatchScore:      0,
		IncludeNutrition:   true,
		IncludePreferences: true,
	}
}

// Validate 檢查 limit 介於 1..maxLimit，minMatchScore 介於 0..1；maxLimit <= 0 時使用 MaxLimit
func (o Options) Validate(maxLimit int) error {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if o.Limit < 1 || o.Limit > maxLimit {
		return common.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", maxLimit))
	}
	if math.IsNaN(o.MinMatchScore) || o.MinMatchScore < 0 || o.MinMatchScore > 1 {
		return common.NewValidationError("min_match_score must be between 0 and 1")
	}
	return nil
}

// GoalStatus 營養目標達成程度
type GoalStatus string

const (
	GoalOptimal      GoalStatus = "optimal"
	GoalGood         GoalStatus = "good"
	GoalOutsideRange GoalStatus = "outside_range"
)

// Recommendation 單筆推薦結果，保留所有分數與診斷欄位
type Recommendation struct {
	RecipeID    string `json:"recipe_id"`
	RecipeName  string `json:"recipe_name"`
	Description string `json:"description,omitempty"`
	TotalTime   int    `json:"total_time,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Servings    int    `json:"servings"`
	ImageURL    string `json:"image_url,omitempty"`

	FinalScore           float64  `json:"final_score"`
	MatchScore           float64  `json:"match_score"`
	AdjustedScore        float64  `json:"adjusted_score"`
	PreferenceAdjustment float64  `json:"preference_adjustment"`
	PreferenceReasons    []string `json:"preference_reasons,omitempty"`
	NutritionScore       float64  `json:"nutrition_score"`

	CanCook              bool                         `json:"can_cook"`
	AvailableIngredients int                          `json:"available_ingredients"`
	TotalIngredients     int                          `json:"total_ingredients"`
	MissingIngredients   []matching.MissingIngredient `json:"missing_ingredients"`
	PartialMatches       []matching.PartialMatch      `json:"partial_matches"`

	Calories *float64              `json:"calories,omitempty"`
	Proteins *float64              `json:"proteins,omitempty"`
	Carbs    *float64              `json:"carbs,omitempty"`
	Fats     *float64              `json:"fats,omitempty"`
	GoalsMet map[string]GoalStatus `json:"goals_met"`
}

// Result 一次排名的輸出。
// Cached 只標示結果是否來自快取，不屬於排名內容；
// 相同快照與參數的兩次呼叫，除 Cached 外其餘欄位完全相同。
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalFound      int              `json:"total_found"`
	FiltersApplied  Options          `json:"filters_applied"`
	Cached          bool             `json:"cached"` // 由 Service 設定，Ranker 永遠為 false
}
