package recipe

import (
	"net/http"

	"pantry-recommender/internal/api/handlers"
	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/core/shopping"
	"pantry-recommender/internal/infrastructure/store"
	"pantry-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FromMissingRequest 依缺少食材產生購物清單；recipe_ids 為空時使用所有啟用中的食譜
type FromMissingRequest struct {
	RecipeIDs []string `json:"recipe_ids"`
}

// FromRecipeRequest 依單一食譜產生購物清單
type FromRecipeRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
	Servings int    `json:"servings" binding:"min=0"`
}

// HandleFromMissing 將缺少與不足的食材併入購物清單
func (h *Handler) HandleFromMissing(c *gin.Context) {
	var req FromMissingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	ctx := c.Request.Context()
	userID := c.Param("user_id")

	var (
		recipes []recipe.Recipe
		err     error
	)
	if len(req.RecipeIDs) > 0 {
		recipes, err = h.repo.ListRecipes(ctx, store.RecipeQuery{IDs: req.RecipeIDs})
	} else {
		recipes, err = h.repo.ListActiveRecipes(ctx)
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if len(recipes) == 0 {
		handlers.RespondError(c, common.ErrRecipeNotFound)
		return
	}

	pantry, err := h.repo.GetPantry(ctx, userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items := h.planner.FromMissing(recipes, pantry)
	if len(items) == 0 {
		c.JSON(http.StatusCreated, []store.ShoppingListItem{})
		return
	}

	h.saveItems(c, userID, items, len(recipes))
}

// HandleFromRecipe 將食譜全部食材依份數併入購物清單
func (h *Handler) HandleFromRecipe(c *gin.Context) {
	var req FromRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	r, err := h.repo.GetRecipe(c.Request.Context(), req.RecipeID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items, err := h.planner.FromRecipe(r, req.Servings)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	h.saveItems(c, c.Param("user_id"), items, 1)
}

func (h *Handler) saveItems(c *gin.Context, userID string, items []shopping.Item, recipeCount int) {
	saved, err := h.repo.MergeShoppingItems(c.Request.Context(), userID, items)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("購物清單已更新",
		zap.String("user_id", userID),
		zap.Int("recipes", recipeCount),
		zap.Int("items", len(saved)),
	)
	c.JSON(http.StatusCreated, saved)
}
