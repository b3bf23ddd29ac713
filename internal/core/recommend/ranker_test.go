package recommend

import (
	"math"
	"testing"

	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ing(name string, qty float64, unit string) recipe.Ingredient {
	return recipe.Ingredient{Name: name, Quantity: qty, Unit: unit}
}

func sampleSnapshot() recipe.Snapshot {
	return recipe.Snapshot{
		Pantry: []recipe.PantryItem{
			{Name: "tomatoes", Quantity: 4, Unit: "unit"},
			{Name: "olive oil", Quantity: 2, Unit: "tbsp"},
			{Name: "pasta", Quantity: 500, Unit: "g"},
			{Name: "chicken breast", Quantity: 2, Unit: "unit"},
		},
		Catalog: []recipe.Recipe{
			{
				ID: "salad", Name: "Tomato Salad", Servings: 2, IsActive: true,
				Ingredients: []recipe.Ingredient{ing("tomatoes", 4, "unit"), ing("olive oil", 2, "tbsp"), ing("vinegar", 1, "tbsp")},
			},
			{
				ID: "pasta", Name: "Tomato Pasta", Servings: 2, IsActive: true,
				Ingredients: []recipe.Ingredient{ing("pasta", 200, "g"), ing("tomatoes", 2, "unit"), ing("olive oil", 1, "tbsp")},
				Nutrition:   &recipe.NutritionProfile{Calories: 600, Proteins: 20, Carbohydrates: 90, Fats: 12},
			},
			{
				ID: "chicken", Name: "Roast Chicken", Servings: 4, IsActive: true,
				Ingredients: []recipe.Ingredient{ing("chicken breast", 2, "unit"), ing("rosemary", 1, "unit")},
			},
			{
				ID: "cake", Name: "Cake", Servings: 8, IsActive: true,
				Ingredients: []recipe.Ingredient{ing("flour", 300, "g"), ing("sugar", 200, "g"), ing("eggs", 3, "unit")},
			},
			{
				ID: "inactive", Name: "Old Pasta", Servings: 2, IsActive: false,
				Ingredients: []recipe.Ingredient{ing("pasta", 100, "g")},
			},
		},
		Preferences: &recipe.Preferences{
			DietaryRestrictions: []string{"vegetarian"},
			DailyCalorieGoal:    floatPtr(2000),
			DailyProteinGoal:    floatPtr(50),
		},
	}
}

func TestRankOrdersByFinalScore(t *testing.T) {
	result, err := NewRanker(nil, nil).Rank(sampleSnapshot(), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, 3, result.TotalFound)
	assert.Equal(t, "pasta", result.Recommendations[0].RecipeID)
	assert.Equal(t, "salad", result.Recommendations[1].RecipeID)
	assert.Equal(t, "cake", result.Recommendations[2].RecipeID)

	for i := 0; i+1 < len(result.Recommendations); i++ {
		assert.GreaterOrEqual(t, result.Recommendations[i].FinalScore, result.Recommendations[i+1].FinalScore)
	}

	top := result.Recommendations[0]
	assert.True(t, top.CanCook)
	assert.Equal(t, 1.0, top.MatchScore)
	assert.InDelta(t, 0.85, top.NutritionScore, 1e-9)
	assert.InDelta(t, 1.0*0.6+0.85*0.4, top.FinalScore, 1e-9)
	assert.Equal(t, GoalOptimal, top.GoalsMet["calories"])
	require.NotNil(t, top.Calories)
	assert.Equal(t, 600.0, *top.Calories)
}

func TestRankExcludesHardFilteredRecipes(t *testing.T) {
	result, err := NewRanker(nil, nil).Rank(sampleSnapshot(), DefaultOptions())
	require.NoError(t, err)

	for _, rec := range result.Recommendations {
		assert.NotEqual(t, "chicken", rec.RecipeID)
		assert.NotEqual(t, "inactive", rec.RecipeID)
	}
}

func TestRankWithoutPreferences(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludePreferences = false

	result, err := NewRanker(nil, nil).Rank(sampleSnapshot(), opts)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalFound)
	ids := make([]string, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		ids = append(ids, rec.RecipeID)
	}
	assert.Contains(t, ids, "chicken")
}

func TestRankWithoutNutrition(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeNutrition = false

	result, err := NewRanker(nil, nil).Rank(sampleSnapshot(), opts)
	require.NoError(t, err)

	for _, rec := range result.Recommendations {
		assert.Equal(t, 0.5, rec.NutritionScore)
		assert.Nil(t, rec.Calories)
		assert.Empty(t, rec.GoalsMet)
	}
}

func TestRankMinMatchScore(t *testing.T) {
	opts := DefaultOptions()
	opts.MinMatchScore = 0.5

	result, err := NewRanker(nil, nil).Rank(sampleSnapshot(), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalFound)
	for _, rec := range result.Recommendations {
		assert.GreaterOrEqual(t, rec.MatchScore, 0.5)
	}
}

func TestRankMinMatchScoreUsesPreAdjustmentScore(t *testing.T) {
	snap := sampleSnapshot()
	snap.Preferences = &recipe.Preferences{DislikedIngredients: []string{"vinegar"}}
	opts := DefaultOptions()
	opts.MinMatchScore = 0.6

	result, err := NewRanker(nil, nil).Rank(snap, opts)
	require.NoError(t, err)

	var salad *Recommendation
	for i := range result.Recommendations {
		if result.Recommendations[i].RecipeID == "salad" {
			salad = &result.Recommendations[i]
		}
	}
	require.NotNil(t, salad)
	assert.InDelta(t, 2.0/3.0, salad.MatchScore, 1e-9)
	assert.InDelta(t, 2.0/3.0-0.3, salad.AdjustedScore, 1e-9)
	assert.InDelta(t, -0.3, salad.PreferenceAdjustment, 1e-9)
}

func TestRankLimitTruncatesAfterCounting(t *testing.T) {
	opts := DefaultOptions()
	opts.Limit = 1

	result, err := NewRanker(nil, nil).Rank(sampleSnapshot(), opts)
	require.NoError(t, err)

	assert.Len(t, result.Recommendations, 1)
	assert.Equal(t, 3, result.TotalFound)
	assert.Equal(t, opts, result.FiltersApplied)
}

func TestRankRejectsNonPositiveLimit(t *testing.T) {
	ranker := NewRanker(nil, nil)

	for _, limit := range []int{0, -1} {
		opts := DefaultOptions()
		opts.Limit = limit

		_, err := ranker.Rank(sampleSnapshot(), opts)
		require.Error(t, err, "limit %d", limit)
		assert.True(t, common.IsValidationError(err))
	}
}

func TestRankPenaltyCanPushScoreBelowEmptyMatch(t *testing.T) {
	snap := recipe.Snapshot{
		Pantry: []recipe.PantryItem{{Name: "onion", Quantity: 1, Unit: "unit"}},
		Catalog: []recipe.Recipe{
			{
				ID: "liver", Name: "Liver and Onions", Servings: 2, IsActive: true, PreparationTime: 60,
				Ingredients: []recipe.Ingredient{
					ing("onion", 1, "unit"), ing("liver", 300, "g"), ing("flour", 20, "g"),
					ing("butter", 30, "g"), ing("sage", 1, "unit"),
				},
			},
			{
				ID: "garlic", Name: "Garlic Confit", Servings: 2, IsActive: true,
				Ingredients: []recipe.Ingredient{ing("garlic", 2, "unit")},
			},
		},
		Preferences: &recipe.Preferences{
			DislikedIngredients: []string{"liver"},
			MaxPrepTime:         intPtr(10),
		},
	}
	opts := DefaultOptions()
	opts.IncludeNutrition = false

	result, err := NewRanker(nil, nil).Rank(snap, opts)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 2)

	first, second := result.Recommendations[0], result.Recommendations[1]
	assert.Equal(t, "garlic", first.RecipeID)
	assert.InDelta(t, 0.2, first.FinalScore, 1e-9)

	assert.Equal(t, "liver", second.RecipeID)
	assert.InDelta(t, 0.2, second.MatchScore, 1e-9)
	assert.InDelta(t, -0.5, second.PreferenceAdjustment, 1e-9)
	assert.InDelta(t, -0.3, second.AdjustedScore, 1e-9)
	assert.InDelta(t, 0.02, second.FinalScore, 1e-9)
}

func TestRankTiesKeepCatalogOrder(t *testing.T) {
	snap := recipe.Snapshot{
		Catalog: []recipe.Recipe{
			{ID: "b", Name: "B", IsActive: true, Ingredients: []recipe.Ingredient{ing("x", 1, "")}},
			{ID: "a", Name: "A", IsActive: true, Ingredients: []recipe.Ingredient{ing("y", 1, "")}},
			{ID: "c", Name: "C", IsActive: true, Ingredients: []recipe.Ingredient{ing("z", 1, "")}},
		},
	}

	result, err := NewRanker(nil, nil).Rank(snap, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, "b", result.Recommendations[0].RecipeID)
	assert.Equal(t, "a", result.Recommendations[1].RecipeID)
	assert.Equal(t, "c", result.Recommendations[2].RecipeID)
}

func TestRankEmptyInputs(t *testing.T) {
	result, err := NewRanker(nil, nil).Rank(recipe.Snapshot{}, DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, result.Recommendations)
	assert.NotNil(t, result.Recommendations)
	assert.Equal(t, 0, result.TotalFound)
}

func TestRankIsIdempotent(t *testing.T) {
	ranker := NewRanker(nil, nil)
	snap := sampleSnapshot()

	first, err := ranker.Rank(snap, DefaultOptions())
	require.NoError(t, err)
	second, err := ranker.Rank(snap, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleSnapshot(), snap)
}

func TestRankRejectsInvalidInput(t *testing.T) {
	ranker := NewRanker(nil, nil)

	snap := sampleSnapshot()
	snap.Pantry[0].Quantity = -1
	_, err := ranker.Rank(snap, DefaultOptions())
	assert.Error(t, err)

	snap = sampleSnapshot()
	snap.Catalog[0].Ingredients[0].Quantity = math.Inf(1)
	_, err = ranker.Rank(snap, DefaultOptions())
	assert.Error(t, err)

	opts := DefaultOptions()
	opts.MinMatchScore = 1.5
	_, err = ranker.Rank(sampleSnapshot(), opts)
	assert.Error(t, err)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate(0))

	tests := []Options{
		{Limit: 0},
		{Limit: 51},
		{Limit: 10, MinMatchScore: -0.1},
		{Limit: 10, MinMatchScore: 1.1},
		{Limit: 10, MinMatchScore: math.NaN()},
	}
	for _, opts := range tests {
		assert.Error(t, opts.Validate(0), "%+v", opts)
	}

	assert.Error(t, Options{Limit: 20}.Validate(15))
}
