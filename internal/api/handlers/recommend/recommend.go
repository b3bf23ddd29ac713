package recommend

import (
	"net/http"

	"pantry-recommender/internal/api/handlers"
	"pantry-recommender/internal/core/recommend"
	"pantry-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Request 推薦參數；未提供的欄位使用預設值
type Request struct {
	Limit              *int     `json:"limit" form:"limit"`
	MinMatchScore      *float64 `json:"min_match_score" form:"min_match_score"`
	IncludeNutrition   *bool    `json:"include_nutrition" form:"include_nutrition"`
	IncludePreferences *bool    `json:"include_preferences" form:"include_preferences"`
}

// ContextResponse 聊天推薦上下文
type ContextResponse struct {
	UserID  string `json:"user_id"`
	Context string `json:"context"`
}

// Handler 推薦處理程序
type Handler struct {
	service      *recommend.Service
	defaultLimit int
}

// NewHandler 創建推薦處理程序；defaultLimit <= 0 時使用 recommend.DefaultLimit
func NewHandler(service *recommend.Service, defaultLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = recommend.DefaultLimit
	}
	return &Handler{service: service, defaultLimit: defaultLimit}
}

// Register 註冊推薦路由
func (h *Handler) Register(users *gin.RouterGroup) {
	users.GET("/:user_id/recommendations", h.HandleGet)
	users.POST("/:user_id/recommendations", h.HandlePost)
	users.GET("/:user_id/recommendations/context", h.HandleContext)
}

// HandleGet 以查詢參數取得推薦
func (h *Handler) HandleGet(c *gin.Context) {
	var req Request
	if err := c.ShouldBindQuery(&req); err != nil {
		handlers.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	h.recommend(c, req)
}

// HandlePost 以 JSON 內容取得推薦
func (h *Handler) HandlePost(c *gin.Context) {
	var req Request
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}
	h.recommend(c, req)
}

// HandleContext 產生聊天用的推薦文字
func (h *Handler) HandleContext(c *gin.Context) {
	userID := c.Param("user_id")

	text, err := h.service.Context(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ContextResponse{UserID: userID, Context: text})
}

func (h *Handler) recommend(c *gin.Context, req Request) {
	userID := c.Param("user_id")
	opts := h.options(req)

	common.LogDebug("處理推薦請求",
		zap.String("user_id", userID),
		zap.Int("limit", opts.Limit),
		zap.Float64("min_match_score", opts.MinMatchScore),
		zap.String("request_id", handlers.RequestID(c)),
	)

	result, err := h.service.Recommend(c.Request.Context(), userID, opts)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) options(req Request) recommend.Options {
	opts := recommend.DefaultOptions()
	opts.Limit = h.defaultLimit
	if req.Limit != nil {
		opts.Limit = *req.Limit
	}
	if req.MinMatchScore != nil {
		opts.MinMatchScore = *req.MinMatchScore
	}
	if req.IncludeNutrition != nil {
		opts.IncludeNutrition = *req.IncludeNutrition
	}
	if req.IncludePreferences != nil {
		opts.IncludePreferences = *req.IncludePreferences
	}
	return opts
}
