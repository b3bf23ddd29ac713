package recipe

import (
	"fmt"
	"net/http"
	"strings"

	"pantry-recommender/internal/api/handlers"
	"pantry-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookRequest 確認烹飪；servings 為 0 時使用食譜原份數
type CookRequest struct {
	Servings int `json:"servings" binding:"min=0"`
}

// CookResponse 烹飪結果
type CookResponse struct {
	Message   string   `json:"message"`
	RecipeID  string   `json:"recipe_id"`
	HistoryID string   `json:"history_id"`
	Servings  int      `json:"servings"`
	Removed   []string `json:"removed_items"`
	Updated   []string `json:"updated_items"`
}

// HandleCook 確認烹飪並扣除庫存
func (h *Handler) HandleCook(c *gin.Context) {
	var req CookRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	ctx := c.Request.Context()
	userID := c.Param("user_id")
	recipeID := c.Param("id")

	r, err := h.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	pantry, err := h.repo.GetPantry(ctx, userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	m := h.evaluator.Evaluate(r, pantry)
	if !m.CanCook {
		missing := m.MissingNames()
		for _, p := range m.PartialMatches {
			missing = append(missing, p.Name)
		}
		handlers.RespondError(c, common.ErrCannotCook.WithErr(
			fmt.Errorf("missing: %s", strings.Join(missing, ", ")),
		))
		return
	}

	servings := req.Servings
	if servings <= 0 {
		servings = r.Servings
	}
	plan := h.evaluator.PlanConsumption(r, pantry, servings)

	result, err := h.repo.ApplyCooking(ctx, userID, recipeID, servings, plan)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("食譜已烹飪",
		zap.String("user_id", userID),
		zap.String("recipe_id", recipeID),
		zap.Int("servings", servings),
		zap.Int("removed", len(result.Removed)),
		zap.Int("updated", len(result.Updated)),
	)

	c.JSON(http.StatusOK, CookResponse{
		Message:   fmt.Sprintf("%s cooked", r.Name),
		RecipeID:  recipeID,
		HistoryID: result.HistoryID,
		Servings:  servings,
		Removed:   result.Removed,
		Updated:   result.Updated,
	})
}
