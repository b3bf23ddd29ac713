package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-recommender/internal/api"
	"pantry-recommender/internal/core/cache"
	"pantry-recommender/internal/core/matching"
	"pantry-recommender/internal/core/recommend"
	"pantry-recommender/internal/infrastructure/backend"
	"pantry-recommender/internal/infrastructure/config"
	"pantry-recommender/internal/infrastructure/metrics"
	"pantry-recommender/internal/infrastructure/store"
	"pantry-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	vocab, err := matching.LoadVocabulary(cfg.Recommend.VocabularyFile)
	if err != nil {
		common.LogFatal("Failed to load vocabulary", zap.Error(err))
	}

	deps := api.Dependencies{}
	var provider recommend.DataProvider

	// 資料來源
	switch cfg.Source.Kind {
	case "http":
		client, err := backend.NewClient(&cfg.Source)
		if err != nil {
			common.LogFatal("Failed to create backend client", zap.Error(err))
		}
		provider = client
		deps.Source = client
	default:
		db, err := store.Open(&cfg.Database)
		if err != nil {
			common.LogFatal("Failed to open database", zap.Error(err))
		}
		defer db.Close()

		if cfg.Database.Seed {
			if err := db.Seed(context.Background()); err != nil {
				common.LogFatal("Failed to seed database", zap.Error(err))
			}
		}
		provider = db
		deps.Source = db
		deps.Repository = db
	}

	// 初始化快取
	cacheStore, err := cache.New(&cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if cacheStore != nil {
		defer cacheStore.Close()
		deps.Cache = cacheStore
	}

	opts := []recommend.Option{
		recommend.WithCache(cacheStore),
		recommend.WithMaxLimit(cfg.Recommend.MaxLimit),
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.NewCollector()
		opts = append(opts, recommend.WithObserver(deps.Metrics))
	}
	deps.Service = recommend.NewService(provider, recommend.NewRankerFromVocabulary(vocab), opts...)

	common.LogInfo("載入設定",
		zap.String("source", deps.Source.Kind()),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
		zap.Int("unit_groups", len(vocab.UnitGroups)),
	)

	// 設置路由
	router, err := api.SetupRouter(cfg, deps)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
