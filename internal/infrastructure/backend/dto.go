package backend

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"pantry-recommender/internal/core/recipe"
)

// decimal 後端的數值欄位可能是數字或十進位字串
type decimal float64

// UnmarshalJSON 接受 12.5、"12.50" 與 null
func (d *decimal) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*d = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid decimal %s: %w", string(data), err)
	}
	*d = decimal(v)
	return nil
}

func (d *decimal) ptr() *float64 {
	if d == nil {
		return nil
	}
	v := float64(*d)
	return &v
}

type stockItemDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity decimal `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (s stockItemDTO) toDomain() recipe.PantryItem {
	return recipe.PantryItem{
		ID:       s.ID,
		Name:     s.Name,
		Quantity: float64(s.Quantity),
		Unit:     s.Unit,
	}
}

type preferencesDTO struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
	DislikedIngredients []string `json:"disliked_ingredients"`
	PreferredCuisines   []string `json:"preferred_cuisines"`
	DailyCalorieGoal    *decimal `json:"daily_calorie_goal"`
	DailyProteinGoal    *decimal `json:"daily_protein_goal"`
	DailyCarbGoal       *decimal `json:"daily_carb_goal"`
	DailyFatGoal        *decimal `json:"daily_fat_goal"`
	MaxPrepTime         *int     `json:"max_prep_time"`
	MaxCookingTime      *int     `json:"max_cooking_time"`
}

func (p preferencesDTO) toDomain() *recipe.Preferences {
	return &recipe.Preferences{
		DietaryRestrictions: p.DietaryRestrictions,
		Allergies:           p.Allergies,
		DislikedIngredients: p.DislikedIngredients,
		PreferredCuisines:   p.PreferredCuisines,
		DailyCalorieGoal:    p.DailyCalorieGoal.ptr(),
		DailyProteinGoal:    p.DailyProteinGoal.ptr(),
		DailyCarbGoal:       p.DailyCarbGoal.ptr(),
		DailyFatGoal:        p.DailyFatGoal.ptr(),
		MaxPrepTime:         p.MaxPrepTime,
		MaxCookingTime:      p.MaxCookingTime,
	}
}

type ingredientDTO struct {
	IngredientName string  `json:"ingredient_name"`
	Name           string  `json:"name"`
	Quantity       decimal `json:"quantity"`
	Unit           string  `json:"unit"`
	Optional       bool    `json:"optional"`
}

type nutritionDTO struct {
	Calories      decimal `json:"calories"`
	Proteins      decimal `json:"proteins"`
	Carbohydrates decimal `json:"carbohydrates"`
	Fats          decimal `json:"fats"`
}

type recipeDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	PreparationTime *int            `json:"preparation_time"`
	CookingTime     *int            `json:"cooking_time"`
	TotalTime       *int            `json:"total_time"`
	Difficulty      string          `json:"difficulty"`
	Servings        int             `json:"servings"`
	ImageURL        string          `json:"image_url"`
	IsActive        *bool           `json:"is_active"`
	Ingredients     []ingredientDTO `json:"ingredients"`
	Nutrition       *nutritionDTO   `json:"nutrition"`
	NutritionData   *nutritionDTO   `json:"nutrition_data"`
}

func (r recipeDTO) toDomain() recipe.Recipe {
	out := recipe.Recipe{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		PreparationTime: intValue(r.PreparationTime),
		CookingTime:     intValue(r.CookingTime),
		TotalTime:       intValue(r.TotalTime),
		Difficulty:      r.Difficulty,
		Servings:        r.Servings,
		ImageURL:        r.ImageURL,
		IsActive:        r.IsActive == nil || *r.IsActive,
		Ingredients:     make([]recipe.Ingredient, 0, len(r.Ingredients)),
	}
	for _, ing := range r.Ingredients {
		name := ing.IngredientName
		if name == "" {
			name = ing.Name
		}
		out.Ingredients = append(out.Ingredients, recipe.Ingredient{
			Name:     name,
			Quantity: float64(ing.Quantity),
			Unit:     ing.Unit,
			Optional: ing.Optional,
		})
	}

	n := r.Nutrition
	if n == nil {
		n = r.NutritionData
	}
	if n != nil {
		out.Nutrition = &recipe.NutritionProfile{
			Calories:      float64(n.Calories),
			Proteins:      float64(n.Proteins),
			Carbohydrates: float64(n.Carbohydrates),
			Fats:          float64(n.Fats),
		}
	}
	return out
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

var _ json.Unmarshaler = (*decimal)(nil)
