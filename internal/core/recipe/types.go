package recipe

import (
	"fmt"
	"math"

	"pantry-recommender/internal/pkg/common"
)

// PantryItem 使用者庫存中的一項食材
type PantryItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Ingredient 食譜所需食材
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Optional bool    `json:"optional"`
}

// NutritionProfile 每份營養資訊
type NutritionProfile struct {
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// Recipe 食譜聚合（含食材與可選的營養資訊）
type Recipe struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	PreparationTime int               `json:"preparation_time,omitempty"` // 分鐘，0 表示未設定
	CookingTime     int               `json:"cooking_time,omitempty"`     // 分鐘，0 表示未設定
	TotalTime       int               `json:"total_time,omitempty"`
	Difficulty      string            `json:"difficulty,omitempty"`
	Servings        int               `json:"servings"`
	ImageURL        string            `json:"image_url,omitempty"`
	IsActive        bool              `json:"is_active"`
	Ingredients     []Ingredient      `json:"ingredients"`
	Nutrition       *NutritionProfile `json:"nutrition,omitempty"`
}

// RequiredIngredients 回傳非選用食材，保持原順序
func (r *Recipe) RequiredIngredients() []Ingredient {
	required := make([]Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if !ing.Optional {
			required = append(required, ing)
		}
	}
	return required
}

// Minutes 回傳總時間；未設定時以準備與烹飪時間相加
func (r *Recipe) Minutes() int {
	if r.TotalTime > 0 {
		return r.TotalTime
	}
	return r.PreparationTime + r.CookingTime
}

// Preferences 使用者飲食偏好，nil 指標表示沒有限制
type Preferences struct {
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	Allergies           []string `json:"allergies,omitempty"`
	DislikedIngredients []string `json:"disliked_ingredients,omitempty"`
	PreferredCuisines   []string `json:"preferred_cuisines,omitempty"`
	DailyCalorieGoal    *float64 `json:"daily_calorie_goal,omitempty"`
	DailyProteinGoal    *float64 `json:"daily_protein_goal,omitempty"`
	DailyCarbGoal       *float64 `json:"daily_carb_goal,omitempty"`
	DailyFatGoal        *float64 `json:"daily_fat_goal,omitempty"`
	MaxPrepTime         *int     `json:"max_prep_time,omitempty"`
	MaxCookingTime      *int     `json:"max_cooking_time,omitempty"`
}

// Snapshot 一次排名所需的全部資料
type Snapshot struct {
	Pantry      []PantryItem
	Preferences *Preferences
	Catalog     []Recipe
}

// ValidatePantry 檢查庫存數量是否為有限的非負數
func ValidatePantry(items []PantryItem) error {
	for _, item := range items {
		if !isFinite(item.Quantity) || item.Quantity < 0 {
			return common.NewValidationError(fmt.Sprintf("pantry item %q has invalid quantity %v", item.Name, item.Quantity))
		}
	}
	return nil
}

// Validate 檢查食譜的數值欄位
func (r *Recipe) Validate() error {
	if r.Servings < 0 {
		return common.NewValidationError(fmt.Sprintf("recipe %q has negative servings", r.Name))
	}
	for _, ing := range r.Ingredients {
		if !isFinite(ing.Quantity) || ing.Quantity < 0 {
			return common.NewValidationError(fmt.Sprintf("ingredient %q of recipe %q has invalid quantity %v", ing.Name, r.Name, ing.Quantity))
		}
	}
	if n := r.Nutrition; n != nil {
		for _, v := range []float64{n.Calories, n.Proteins, n.Carbohydrates, n.Fats} {
			if !isFinite(v) || v < 0 {
				return common.NewValidationError(fmt.Sprintf("recipe %q has invalid nutrition value %v", r.Name, v))
			}
		}
	}
	return nil
}

// Validate 檢查營養目標與時間限制
func (p *Preferences) Validate() error {
	if p == nil {
		return nil
	}
	for _, goal := range []*float64{p.DailyCalorieGoal, p.DailyProteinGoal, p.DailyCarbGoal, p.DailyFatGoal} {
		if goal != nil && (!isFinite(*goal) || *goal < 0) {
			return common.NewValidationError(fmt.Sprintf("invalid nutrition goal %v", *goal))
		}
	}
	for _, limit := range []*int{p.MaxPrepTime, p.MaxCookingTime} {
		if limit != nil && *limit < 0 {
			return common.NewValidationError(fmt.Sprintf("invalid time limit %d", *limit))
		}
	}
	return nil
}

// Validate 檢查整份快照
func (s *Snapshot) Validate() error {
	if err := ValidatePantry(s.Pantry); err != nil {
		return err
	}
	if err := s.Preferences.Validate(); err != nil {
		return err
	}
	for i := range s.Catalog {
		if err := s.Catalog[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
