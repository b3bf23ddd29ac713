package shopping

import (
	"errors"
	"testing"

	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMissingAggregates(t *testing.T) {
	recipes := []recipe.Recipe{
		{
			Name: "Omelette",
			Ingredients: []recipe.Ingredient{
				{Name: "Eggs", Quantity: 3, Unit: "unit"},
				{Name: "milk", Quantity: 100, Unit: "ml"},
				{Name: "chives", Quantity: 1, Unit: "tbsp", Optional: true},
			},
		},
		{
			Name: "Pancakes",
			Ingredients: []recipe.Ingredient{
				{Name: "flour", Quantity: 200, Unit: "g"},
				{Name: "eggs", Quantity: 2, Unit: "unit"},
				{Name: "milk", Quantity: 300, Unit: "ml"},
			},
		},
	}
	pantry := []recipe.PantryItem{
		{Name: "milk", Quantity: 250, Unit: "ml"},
	}

	items := FromMissing(recipes, pantry)

	require.Len(t, items, 3)
	assert.Equal(t, Item{Name: "Eggs", Quantity: 5, Unit: "unit", Recipes: []string{"Omelette", "Pancakes"}}, items[0])
	assert.Equal(t, Item{Name: "flour", Quantity: 200, Unit: "g", Recipes: []string{"Pancakes"}}, items[1])
	assert.Equal(t, Item{Name: "milk", Quantity: 50, Unit: "ml", Recipes: []string{"Pancakes"}}, items[2])
}

func TestFromMissingNothingToBuy(t *testing.T) {
	recipes := []recipe.Recipe{{Name: "Toast", Ingredients: []recipe.Ingredient{{Name: "bread", Quantity: 2}}}}
	pantry := []recipe.PantryItem{{Name: "bread", Quantity: 10}}

	items := FromMissing(recipes, pantry)

	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestFromRecipeScales(t *testing.T) {
	r := &recipe.Recipe{
		Name:     "Soup",
		Servings: 4,
		Ingredients: []recipe.Ingredient{
			{Name: "carrots", Quantity: 4, Unit: "unit"},
			{Name: "parsley", Quantity: 2, Unit: "tbsp", Optional: true},
		},
	}

	items, err := FromRecipe(r, 2)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, 2.0, items[0].Quantity)
	assert.Equal(t, 1.0, items[1].Quantity)
}

func TestFromRecipeDefaultServings(t *testing.T) {
	r := &recipe.Recipe{Name: "Soup", Servings: 4, Ingredients: []recipe.Ingredient{{Name: "carrots", Quantity: 4}}}

	items, err := FromRecipe(r, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, items[0].Quantity)
}

func TestFromRecipeWithoutIngredients(t *testing.T) {
	_, err := FromRecipe(&recipe.Recipe{Name: "Air"}, 2)
	assert.True(t, errors.Is(err, common.ErrNoIngredients))
}
