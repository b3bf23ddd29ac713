package recipe

import (
	"context"
	"strconv"
	"strings"

	"pantry-recommender/internal/core/matching"
	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/core/shopping"
	"pantry-recommender/internal/infrastructure/store"

	"github.com/gin-gonic/gin"
)

// Repository 食譜、庫存與購物清單的讀寫
type Repository interface {
	ListRecipes(ctx context.Context, q store.RecipeQuery) ([]recipe.Recipe, error)
	ListActiveRecipes(ctx context.Context) ([]recipe.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error)
	GetPantry(ctx context.Context, userID string) ([]recipe.PantryItem, error)
	ApplyCooking(ctx context.Context, userID, recipeID string, servings int, plan []matching.Consumption) (*store.CookResult, error)
	MergeShoppingItems(ctx context.Context, userID string, items []shopping.Item) ([]store.ShoppingListItem, error)
}

// Handler 食譜、烹飪與購物清單處理程序
type Handler struct {
	repo      Repository
	evaluator *matching.Evaluator
	planner   *shopping.Planner
}

// NewHandler 創建處理程序；evaluator 為 nil 時使用內建單位表
func NewHandler(repo Repository, evaluator *matching.Evaluator) *Handler {
	if evaluator == nil {
		evaluator = matching.NewEvaluator(nil)
	}
	return &Handler{
		repo:      repo,
		evaluator: evaluator,
		planner:   shopping.NewPlanner(evaluator),
	}
}

// Register 註冊食譜與使用者相關路由
func (h *Handler) Register(api *gin.RouterGroup, users *gin.RouterGroup) {
	recipes := api.Group("/recipes")
	{
		recipes.GET("", h.HandleList)
		recipes.GET("/:id", h.HandleDetail)
	}

	users.POST("/:user_id/recipes/:id/cook", h.HandleCook)
	users.POST("/:user_id/shopping-list/generate-from-missing", h.HandleFromMissing)
	users.POST("/:user_id/shopping-list/generate-from-recipe", h.HandleFromRecipe)
}

// queryInt 讀取非負整數查詢參數；未提供時回傳 0
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func caloriesOf(r *recipe.Recipe) *float64 {
	if r.Nutrition == nil {
		return nil
	}
	v := r.Nutrition.Calories
	return &v
}
