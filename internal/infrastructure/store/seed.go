package store

import (
	"context"
	"fmt"
	"strings"

	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// DemoUserID 範例資料使用的使用者
const DemoUserID = "00000000-0000-0000-0000-000000000001"

// CreateRecipe 新增食譜（含食材與營養資料），回傳食譜 ID
func (s *Store) CreateRecipe(ctx context.Context, r recipe.Recipe) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	row := Recipe{
		UUIDModel:       UUIDModel{ID: r.ID},
		Name:            r.Name,
		Description:     r.Description,
		PreparationTime: r.PreparationTime,
		CookingTime:     r.CookingTime,
		TotalTime:       r.TotalTime,
		Difficulty:      r.Difficulty,
		Servings:        r.Servings,
		ImageURL:        r.ImageURL,
		IsActive:        r.IsActive,
	}
	if row.TotalTime == 0 {
		row.TotalTime = r.PreparationTime + r.CookingTime
	}
	for i, ing := range r.Ingredients {
		row.Ingredients = append(row.Ingredients, RecipeIngredient{
			IngredientName: ing.Name,
			Quantity:       ing.Quantity,
			Unit:           ing.Unit,
			Optional:       ing.Optional,
			OrderIndex:     i,
		})
	}
	if n := r.Nutrition; n != nil {
		row.Nutrition = &NutritionData{
			Calories:      n.Calories,
			Proteins:      n.Proteins,
			Carbohydrates: n.Carbohydrates,
			Fats:          n.Fats,
		}
	}

	tx := s.db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := tx.Create(&row).Error; err != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to create recipe: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return "", fmt.Errorf("failed to commit recipe: %w", err)
	}
	return row.ID, nil
}

// AddStockItem 新增庫存項目，回傳項目 ID
func (s *Store) AddStockItem(ctx context.Context, userID string, item recipe.PantryItem) (string, error) {
	if err := recipe.ValidatePantry([]recipe.PantryItem{item}); err != nil {
		return "", err
	}

	now := s.now()
	row := StockItem{
		UUIDModel: UUIDModel{ID: item.ID},
		UserID:    userID,
		Name:      strings.TrimSpace(item.Name),
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		AddedAt:   now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to create stock item: %w", err)
	}
	return row.ID, nil
}

// SavePreferences 新增或覆寫使用者偏好
func (s *Store) SavePreferences(ctx context.Context, userID string, prefs recipe.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}

	var row UserPreferences
	if err := s.db.Where(UserPreferences{UserID: userID}).FirstOrInit(&row).Error; err != nil {
		return fmt.Errorf("failed to query preferences: %w", err)
	}

	row.UserID = userID
	row.DietaryRestrictions = prefs.DietaryRestrictions
	row.Allergies = prefs.Allergies
	row.DislikedIngredients = prefs.DislikedIngredients
	row.PreferredCuisines = prefs.PreferredCuisines
	row.DailyCalorieGoal = prefs.DailyCalorieGoal
	row.DailyProteinGoal = prefs.DailyProteinGoal
	row.DailyCarbGoal = prefs.DailyCarbGoal
	row.DailyFatGoal = prefs.DailyFatGoal
	row.MaxPrepTime = prefs.MaxPrepTime
	row.MaxCookingTime = prefs.MaxCookingTime

	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Seed 資料庫沒有食譜時寫入範例食譜與示範使用者的庫存
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.db.Model(&Recipe{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		common.LogInfo("略過範例資料", zap.Int("recipes", count))
		return nil
	}

	for _, r := range sampleRecipes() {
		if _, err := s.CreateRecipe(ctx, r); err != nil {
			return err
		}
	}
	for _, item := range samplePantry() {
		if _, err := s.AddStockItem(ctx, DemoUserID, item); err != nil {
			return err
		}
	}

	common.LogInfo("範例資料已寫入",
		zap.Int("recipes", len(sampleRecipes())),
		zap.String("demo_user", DemoUserID),
	)
	return nil
}

func sampleRecipes() []recipe.Recipe {
	return []recipe.Recipe{
		{
			Name: "Salade de tomates", Description: "Tomates, huile d'olive et vinaigre",
			PreparationTime: 10, Difficulty: "Facile", Servings: 2, IsActive: true,
			Ingredients: []recipe.Ingredient{
				{Name: "tomates", Quantity: 4, Unit: "unité"},
				{Name: "huile d'olive", Quantity: 2, Unit: "càs"},
				{Name: "vinaigre", Quantity: 1, Unit: "càs"},
				{Name: "basilic", Quantity: 5, Unit: "unité", Optional: true},
			},
			Nutrition: &recipe.NutritionProfile{Calories: 180, Proteins: 3, Carbohydrates: 10, Fats: 14},
		},
		{
			Name: "Omelette au fromage", Description: "Omelette rapide",
			PreparationTime: 5, CookingTime: 10, Difficulty: "Facile", Servings: 1, IsActive: true,
			Ingredients: []recipe.Ingredient{
				{Name: "œufs", Quantity: 3, Unit: "unité"},
				{Name: "fromage râpé", Quantity: 50, Unit: "g"},
				{Name: "beurre", Quantity: 10, Unit: "g"},
			},
			Nutrition: &recipe.NutritionProfile{Calories: 450, Proteins: 28, Carbohydrates: 2, Fats: 36},
		},
		{
			Name: "Pâtes à la tomate", Description: "Pâtes sauce tomate maison",
			PreparationTime: 10, CookingTime: 20, Difficulty: "Facile", Servings: 2, IsActive: true,
			Ingredients: []recipe.Ingredient{
				{Name: "pâtes", Quantity: 200, Unit: "g"},
				{Name: "tomates", Quantity: 3, Unit: "unité"},
				{Name: "ail", Quantity: 2, Unit: "unité"},
				{Name: "huile d'olive", Quantity: 1, Unit: "càs"},
			},
			Nutrition: &recipe.NutritionProfile{Calories: 520, Proteins: 16, Carbohydrates: 90, Fats: 10},
		},
		{
			Name: "Poulet rôti", Description: "Poulet rôti aux herbes",
			PreparationTime: 15, CookingTime: 60, Difficulty: "Moyen", Servings: 4, IsActive: true,
			Ingredients: []recipe.Ingredient{
				{Name: "poulet", Quantity: 1, Unit: "unité"},
				{Name: "thym", Quantity: 1, Unit: "càc"},
				{Name: "beurre", Quantity: 30, Unit: "g"},
			},
			Nutrition: &recipe.NutritionProfile{Calories: 610, Proteins: 55, Carbohydrates: 0, Fats: 42},
		},
	}
}

func samplePantry() []recipe.PantryItem {
	return []recipe.PantryItem{
		{Name: "tomates", Quantity: 6, Unit: "unité"},
		{Name: "huile d'olive", Quantity: 10, Unit: "càs"},
		{Name: "pâtes", Quantity: 500, Unit: "g"},
		{Name: "ail", Quantity: 4, Unit: "unité"},
		{Name: "œufs", Quantity: 2, Unit: "unité"},
		{Name: "beurre", Quantity: 250, Unit: "g"},
	}
}
