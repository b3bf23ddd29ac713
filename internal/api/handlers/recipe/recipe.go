package recipe

import (
	"net/http"

	"pantry-recommender/internal/api/handlers"
	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/infrastructure/store"
	"pantry-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Summary 食譜列表項目；提供 user_id 時附上庫存可用性
type Summary struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	TotalTime            int      `json:"total_time,omitempty"`
	Difficulty           string   `json:"difficulty,omitempty"`
	Servings             int      `json:"servings"`
	ImageURL             string   `json:"image_url,omitempty"`
	Calories             *float64 `json:"calories,omitempty"`
	MatchScore           *float64 `json:"match_score,omitempty"`
	AvailableIngredients *int     `json:"available_ingredients,omitempty"`
	MissingIngredients   *int     `json:"missing_ingredients,omitempty"`
}

// Detail 食譜詳情；提供 user_id 時附上可否烹飪與缺少的食材
type Detail struct {
	recipe.Recipe
	CanCook            *bool    `json:"can_cook,omitempty"`
	MatchScore         *float64 `json:"match_score,omitempty"`
	MissingIngredients []string `json:"missing_ingredients,omitempty"`
}

// HandleList 列出啟用中的食譜
func (h *Handler) HandleList(c *gin.Context) {
	maxTime, ok := queryInt(c, "max_time")
	if !ok {
		handlers.BadRequest(c, "max_time must be a non-negative integer")
		return
	}
	minServings, ok := queryInt(c, "min_servings")
	if !ok {
		handlers.BadRequest(c, "min_servings must be a non-negative integer")
		return
	}

	ctx := c.Request.Context()
	recipes, err := h.repo.ListRecipes(ctx, store.RecipeQuery{
		Difficulty:  c.Query("difficulty"),
		MaxTime:     maxTime,
		MinServings: minServings,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	var pantry []recipe.PantryItem
	userID := c.Query("user_id")
	if userID != "" {
		if pantry, err = h.repo.GetPantry(ctx, userID); err != nil {
			handlers.RespondError(c, err)
			return
		}
	}

	summaries := make([]Summary, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		s := Summary{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			TotalTime:   r.Minutes(),
			Difficulty:  r.Difficulty,
			Servings:    r.Servings,
			ImageURL:    r.ImageURL,
			Calories:    caloriesOf(r),
		}
		if userID != "" {
			m := h.evaluator.Evaluate(r, pantry)
			missing := len(m.MissingIngredients)
			s.MatchScore = &m.MatchScore
			s.AvailableIngredients = &m.AvailableCount
			s.MissingIngredients = &missing
		}
		summaries = append(summaries, s)
	}

	common.LogDebug("食譜列表",
		zap.Int("count", len(summaries)),
		zap.Bool("with_availability", userID != ""),
	)
	c.JSON(http.StatusOK, summaries)
}

// HandleDetail 取得單一食譜
func (h *Handler) HandleDetail(c *gin.Context) {
	ctx := c.Request.Context()

	r, err := h.repo.GetRecipe(ctx, c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	detail := Detail{Recipe: *r}
	if userID := c.Query("user_id"); userID != "" {
		pantry, err := h.repo.GetPantry(ctx, userID)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		m := h.evaluator.Evaluate(r, pantry)
		detail.CanCook = &m.CanCook
		detail.MatchScore = &m.MatchScore
		detail.MissingIngredients = m.MissingNames()
	}

	c.JSON(http.StatusOK, detail)
}
