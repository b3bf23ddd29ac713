package api

import (
	"context"
	"errors"
	"time"

	"pantry-recommender/internal/api/handlers/health"
	recipeHandler "pantry-recommender/internal/api/handlers/recipe"
	recommendHandler "pantry-recommender/internal/api/handlers/recommend"
	"pantry-recommender/internal/api/middleware"
	"pantry-recommender/internal/core/cache"
	"pantry-recommender/internal/core/recommend"
	"pantry-recommender/internal/infrastructure/config"
	"pantry-recommender/internal/infrastructure/metrics"
	"pantry-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 請求超時
const timeoutDuration = 30 * time.Second

// Dependencies 路由需要的服務
type Dependencies struct {
	Service *recommend.Service
	Source  health.Source
	// Repository 為 nil 時不註冊食譜、烹飪與購物清單路由
	Repository recipeHandler.Repository
	Cache      cache.Store
	Metrics    *metrics.Collector
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Service == nil || deps.Source == nil {
		return nil, errors.New("recommendation service and data source are required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("source", deps.Source.Kind()),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.NewDeduplicator(cfg.DedupWindow).Middleware())
	router.Use(requestTimeout(timeoutDuration))

	var stats health.StatsProvider
	if deps.Cache != nil {
		stats = deps.Cache
	}
	health.NewHandler(cfg.App.Version, deps.Source, stats).Register(router)

	if deps.Metrics != nil && cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	api := router.Group("/api/v1")
	users := api.Group("/users")

	recommendHandler.NewHandler(deps.Service, cfg.Recommend.DefaultLimit).Register(users)

	if deps.Repository != nil {
		recipeHandler.NewHandler(deps.Repository, deps.Service.Ranker().Evaluator()).Register(api, users)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("metrics_enabled", deps.Metrics != nil && cfg.Metrics.Enabled),
		zap.Bool("recipe_routes", deps.Repository != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

// requestTimeout 為每個請求設定截止時間
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
		}
	}
}
