package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/core/recommend"
	"pantry-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	pantry  []recipe.PantryItem
	catalog []recipe.Recipe
	err     error
}

func (s stubProvider) GetPantry(context.Context, string) ([]recipe.PantryItem, error) {
	return s.pantry, s.err
}

func (s stubProvider) GetPreferences(context.Context, string) (*recipe.Preferences, error) {
	return nil, nil
}

func (s stubProvider) ListActiveRecipes(context.Context) ([]recipe.Recipe, error) {
	return s.catalog, nil
}

func newRouter(p recommend.DataProvider, defaultLimit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(recommend.NewService(p, nil), defaultLimit).Register(r.Group("/users"))
	return r
}

func catalog() []recipe.Recipe {
	out := make([]recipe.Recipe, 0, 3)
	for _, name := range []string{"a", "b", "c"} {
		out = append(out, recipe.Recipe{
			ID: name, Name: name, Servings: 1, IsActive: true,
			Ingredients: []recipe.Ingredient{{Name: "rice", Quantity: 1, Unit: "kg"}},
		})
	}
	return out
}

func TestDefaultLimitFromConfig(t *testing.T) {
	r := newRouter(stubProvider{catalog: catalog()}, 2)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/u1/recommendations", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var result recommend.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Recommendations, 2)
	assert.Equal(t, 3, result.TotalFound)
	assert.True(t, result.FiltersApplied.IncludeNutrition)
	assert.True(t, result.FiltersApplied.IncludePreferences)
}

func TestPostOverridesDefaults(t *testing.T) {
	r := newRouter(stubProvider{catalog: catalog()}, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/u1/recommendations",
		strings.NewReader(`{"limit":1,"include_preferences":false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result recommend.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Recommendations, 1)
	assert.False(t, result.FiltersApplied.IncludePreferences)
}

func TestInvalidBody(t *testing.T) {
	r := newRouter(stubProvider{}, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/u1/recommendations", strings.NewReader(`{"limit":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSourceFailure(t *testing.T) {
	r := newRouter(stubProvider{err: errors.New("connection refused")}, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/u1/recommendations/context", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, common.ErrCodeSourceDown, body.Code)
}

func TestContextWithEmptyPantry(t *testing.T) {
	r := newRouter(stubProvider{catalog: catalog()}, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/u1/recommendations/context", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body ContextResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No recipe recommendations are available for the current pantry.", body.Context)
}
