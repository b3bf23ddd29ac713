package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/pkg/common"

	"github.com/jinzhu/gorm"
)

// StringSlice 以 JSON 文字儲存的字串陣列
type StringSlice []string

// Value 轉成 JSON 字串儲存
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 從資料庫值還原陣列
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// UUIDModel 共用的 UUID 主鍵
type UUIDModel struct {
	ID string `gorm:"primary_key;type:varchar(36)" json:"id"`
}

// BeforeCreate 未指定主鍵時產生 UUID
func (b *UUIDModel) BeforeCreate(scope *gorm.Scope) error {
	if b.ID == "" {
		return scope.SetColumn("ID", common.GenerateUUID())
	}
	return nil
}

// Recipe 食譜資料表
type Recipe struct {
	UUIDModel
	Name            string             `gorm:"type:varchar(255);not null;index" json:"name"`
	Description     string             `gorm:"type:text" json:"description"`
	PreparationTime int                `json:"preparation_time"`
	CookingTime     int                `json:"cooking_time"`
	TotalTime       int                `json:"total_time"`
	Difficulty      string             `gorm:"type:varchar(20)" json:"difficulty"`
	Servings        int                `json:"servings"`
	ImageURL        string             `gorm:"type:varchar(500)" json:"image_url"`
	IsActive        bool               `gorm:"index" json:"is_active"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Ingredients     []RecipeIngredient `gorm:"foreignkey:RecipeID" json:"ingredients"`
	Nutrition       *NutritionData     `gorm:"foreignkey:RecipeID" json:"nutrition,omitempty"`
}

// TableName 設定資料表名稱
func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient 食譜食材資料表
type RecipeIngredient struct {
	UUIDModel
	RecipeID       string  `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	IngredientName string  `gorm:"type:varchar(255);not null;index" json:"ingredient_name"`
	Quantity       float64 `gorm:"not null" json:"quantity"`
	Unit           string  `gorm:"type:varchar(50)" json:"unit"`
	Optional       bool    `json:"optional"`
	OrderIndex     int     `json:"order_index"`
}

// TableName 設定資料表名稱
func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// NutritionData 每份營養資料表
type NutritionData struct {
	UUIDModel
	RecipeID      string  `gorm:"type:varchar(36);not null;unique_index" json:"recipe_id"`
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// TableName 設定資料表名稱
func (NutritionData) TableName() string { return "nutrition_data" }

// StockItem 使用者庫存資料表
type StockItem struct {
	UUIDModel
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Unit      string    `gorm:"type:varchar(50)" json:"unit"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 設定資料表名稱
func (StockItem) TableName() string { return "stock_items" }

// UserPreferences 使用者偏好資料表
type UserPreferences struct {
	UUIDModel
	UserID              string      `gorm:"type:varchar(36);not null;unique_index" json:"user_id"`
	DietaryRestrictions StringSlice `gorm:"type:text" json:"dietary_restrictions"`
	Allergies           StringSlice `gorm:"type:text" json:"allergies"`
	DislikedIngredients StringSlice `gorm:"type:text" json:"disliked_ingredients"`
	PreferredCuisines   StringSlice `gorm:"type:text" json:"preferred_cuisines"`
	DailyCalorieGoal    *float64    `json:"daily_calorie_goal"`
	DailyProteinGoal    *float64    `json:"daily_protein_goal"`
	DailyCarbGoal       *float64    `json:"daily_carb_goal"`
	DailyFatGoal        *float64    `json:"daily_fat_goal"`
	MaxPrepTime         *int        `json:"max_prep_time"`
	MaxCookingTime      *int        `json:"max_cooking_time"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// TableName 設定資料表名稱
func (UserPreferences) TableName() string { return "user_preferences" }

// CookingHistory 烹飪紀錄資料表
type CookingHistory struct {
	UUIDModel
	UserID       string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	RecipeID     string    `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	ServingsMade int       `json:"servings_made"`
	CookedAt     time.Time `gorm:"index" json:"cooked_at"`
}

// TableName 設定資料表名稱
func (CookingHistory) TableName() string { return "cooking_history" }

// ShoppingListItem 購物清單資料表
type ShoppingListItem struct {
	UUIDModel
	UserID      string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ItemName    string     `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `gorm:"type:varchar(50)" json:"unit"`
	IsPurchased bool       `gorm:"index" json:"is_purchased"`
	AddedAt     time.Time  `json:"added_at"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
}

// TableName 設定資料表名稱
func (ShoppingListItem) TableName() string { return "shopping_list" }

// toDomain 轉成核心的食譜型別
func (r *Recipe) toDomain() recipe.Recipe {
	out := recipe.Recipe{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		PreparationTime: r.PreparationTime,
		CookingTime:     r.CookingTime,
		TotalTime:       r.TotalTime,
		Difficulty:      r.Difficulty,
		Servings:        r.Servings,
		ImageURL:        r.ImageURL,
		IsActive:        r.IsActive,
		Ingredients:     make([]recipe.Ingredient, 0, len(r.Ingredients)),
	}
	for _, ing := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, recipe.Ingredient{
			Name:     ing.IngredientName,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Optional: ing.Optional,
		})
	}
	if n := r.Nutrition; n != nil {
		out.Nutrition = &recipe.NutritionProfile{
			Calories:      n.Calories,
			Proteins:      n.Proteins,
			Carbohydrates: n.Carbohydrates,
			Fats:          n.Fats,
		}
	}
	return out
}

// toDomain 轉成核心的偏好型別
func (p *UserPreferences) toDomain() *recipe.Preferences {
	return &recipe.Preferences{
		DietaryRestrictions: p.DietaryRestrictions,
		Allergies:           p.Allergies,
		DislikedIngredients: p.DislikedIngredients,
		PreferredCuisines:   p.PreferredCuisines,
		DailyCalorieGoal:    p.DailyCalorieGoal,
		DailyProteinGoal:    p.DailyProteinGoal,
		DailyCarbGoal:       p.DailyCarbGoal,
		DailyFatGoal:        p.DailyFatGoal,
		MaxPrepTime:         p.MaxPrepTime,
		MaxCookingTime:      p.MaxCookingTime,
	}
}
