package recommend

import (
	"testing"

	"pantry-recommender/internal/core/matching"
	"pantry-recommender/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func recipeWith(names ...string) *recipe.Recipe {
	r := &recipe.Recipe{ID: "r", Name: "Test", Servings: 2, IsActive: true}
	for _, n := range names {
		r.Ingredients = append(r.Ingredients, recipe.Ingredient{Name: n, Quantity: 1, Unit: "unit"})
	}
	return r
}

func TestFilterNoPreferences(t *testing.T) {
	result := ApplyPreferences(recipeWith("chicken"), nil)

	assert.True(t, result.Passed)
	assert.Empty(t, result.Reasons)
	assert.Equal(t, 0.0, result.ScoreAdjustment)
}

func TestFilterAllergyExcludes(t *testing.T) {
	prefs := &recipe.Preferences{Allergies: []string{"peanut"}}

	result := ApplyPreferences(recipeWith("bread", "Peanut Butter"), prefs)

	assert.False(t, result.Passed)
	assert.Equal(t, -1.0, result.ScoreAdjustment)
	require.Len(t, result.Reasons, 1)
	assert.Contains(t, result.Reasons[0], "peanut")
}

func TestFilterAllergyMatchesBothDirections(t *testing.T) {
	prefs := &recipe.Preferences{Allergies: []string{"shellfish mix"}}

	result := ApplyPreferences(recipeWith("shellfish"), prefs)

	assert.False(t, result.Passed)
}

func TestFilterVegetarian(t *testing.T) {
	prefs := &recipe.Preferences{DietaryRestrictions: []string{"Vegetarian"}}

	assert.False(t, ApplyPreferences(recipeWith("rice", "chicken breast"), prefs).Passed)
	assert.False(t, ApplyPreferences(recipeWith("filet de poulet"), prefs).Passed)
	assert.True(t, ApplyPreferences(recipeWith("rice", "butter"), prefs).Passed)
}

func TestFilterVegan(t *testing.T) {
	prefs := &recipe.Preferences{DietaryRestrictions: []string{"végétalien"}}

	result := ApplyPreferences(recipeWith("flour", "whole milk"), prefs)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Reasons[0], "milk")

	assert.True(t, ApplyPreferences(recipeWith("flour", "water"), prefs).Passed)
}

func TestFilterChecksOptionalIngredients(t *testing.T) {
	r := recipeWith("lettuce")
	r.Ingredients = append(r.Ingredients, recipe.Ingredient{Name: "bacon bits", Optional: true})
	prefs := &recipe.Preferences{Allergies: []string{"bacon"}}

	assert.False(t, ApplyPreferences(r, prefs).Passed)
}

func TestFilterDislikeIsSingleDeduction(t *testing.T) {
	prefs := &recipe.Preferences{DislikedIngredients: []string{"onion", "garlic"}}

	result := ApplyPreferences(recipeWith("red onion", "garlic", "onion powder"), prefs)

	assert.True(t, result.Passed)
	assert.InDelta(t, -0.3, result.ScoreAdjustment, 1e-9)
	assert.Len(t, result.Reasons, 2)
}

func TestFilterTimePenalties(t *testing.T) {
	r := recipeWith("pasta")
	r.PreparationTime = 30
	r.CookingTime = 60
	prefs := &recipe.Preferences{MaxPrepTime: intPtr(15), MaxCookingTime: intPtr(45)}

	result := ApplyPreferences(r, prefs)

	assert.True(t, result.Passed)
	assert.InDelta(t, -0.4, result.ScoreAdjustment, 1e-9)
	assert.Len(t, result.Reasons, 2)
}

func TestFilterTimeIgnoredWhenUnset(t *testing.T) {
	r := recipeWith("pasta")
	r.CookingTime = 60
	prefs := &recipe.Preferences{MaxPrepTime: intPtr(10), MaxCookingTime: intPtr(0)}

	result := ApplyPreferences(r, prefs)

	assert.Equal(t, 0.0, result.ScoreAdjustment)
}

func TestFilterAdjustmentCombines(t *testing.T) {
	r := recipeWith("onion")
	r.PreparationTime = 30
	r.CookingTime = 30
	prefs := &recipe.Preferences{
		DislikedIngredients: []string{"onion"},
		MaxPrepTime:         intPtr(5),
		MaxCookingTime:      intPtr(5),
	}

	result := ApplyPreferences(r, prefs)

	assert.InDelta(t, -0.7, result.ScoreAdjustment, 1e-9)
	assert.GreaterOrEqual(t, result.ScoreAdjustment, -1.0)
}

func TestFilterCustomVocabulary(t *testing.T) {
	vocab := matching.DefaultVocabulary()
	vocab.MeatTerms = []string{"venison"}
	filter := NewFilter(vocab)
	prefs := &recipe.Preferences{DietaryRestrictions: []string{"vegetarian"}}

	assert.False(t, filter.Apply(recipeWith("venison stew"), prefs).Passed)
	assert.True(t, filter.Apply(recipeWith("chicken"), prefs).Passed)
}
