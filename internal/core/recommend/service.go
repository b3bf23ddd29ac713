package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pantry-recommender/internal/core/cache"
	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// DataProvider 唯讀的協作資料來源（庫存、偏好、食譜目錄）
type DataProvider interface {
	GetPantry(ctx context.Context, userID string) ([]recipe.PantryItem, error)
	// GetPreferences 使用者沒有設定偏好時回傳 nil, nil
	GetPreferences(ctx context.Context, userID string) (*recipe.Preferences, error)
	ListActiveRecipes(ctx context.Context) ([]recipe.Recipe, error)
}

// Observer 接收排名與緩存的統計
type Observer interface {
	ObserveRanking(duration time.Duration, catalogSize, found int)
	ObserveCache(hit bool)
	ObserveSourceError(operation string)
}

type nopObserver struct{}

func (nopObserver) ObserveRanking(time.Duration, int, int) {}
func (nopObserver) ObserveCache(bool)                      {}
func (nopObserver) ObserveSourceError(string)              {}

// Service 推薦服務：一次讀取快照後交給 Ranker 計算
type Service struct {
	provider DataProvider
	ranker   *Ranker
	cache    cache.Store
	observer Observer
	maxLimit int
}

// Option 服務選項
type Option func(*Service)

// WithCache 啟用結果緩存
func WithCache(store cache.Store) Option {
	return func(s *Service) { s.cache = store }
}

// WithObserver 設定指標收集器
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithMaxLimit 設定 limit 上限
func WithMaxLimit(n int) Option {
	return func(s *Service) { s.maxLimit = n }
}

// NewService 創建推薦服務
func NewService(provider DataProvider, ranker *Ranker, opts ...Option) *Service {
	if ranker == nil {
		ranker = NewRanker(nil, nil)
	}
	s := &Service{
		provider: provider,
		ranker:   ranker,
		observer: nopObserver{},
		maxLimit: MaxLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ranker 回傳服務使用的排名器
func (s *Service) Ranker() *Ranker {
	return s.ranker
}

// LoadSnapshot 讀取使用者的庫存、偏好與啟用中的食譜目錄；任何一項失敗都回傳錯誤
func (s *Service) LoadSnapshot(ctx context.Context, userID string) (recipe.Snapshot, error) {
	pantry, err := s.provider.GetPantry(ctx, userID)
	if err != nil {
		s.observer.ObserveSourceError("pantry")
		return recipe.Snapshot{}, common.ErrDataSourceUnavailable.WithErr(fmt.Errorf("load pantry: %w", err))
	}

	prefs, err := s.provider.GetPreferences(ctx, userID)
	if err != nil {
		s.observer.ObserveSourceError("preferences")
		return recipe.Snapshot{}, common.ErrDataSourceUnavailable.WithErr(fmt.Errorf("load preferences: %w", err))
	}

	catalog, err := s.provider.ListActiveRecipes(ctx)
	if err != nil {
		s.observer.ObserveSourceError("catalog")
		return recipe.Snapshot{}, common.ErrDataSourceUnavailable.WithErr(fmt.Errorf("load catalog: %w", err))
	}

	return recipe.Snapshot{Pantry: pantry, Preferences: prefs, Catalog: catalog}, nil
}

// Recommend 為使用者產生推薦清單。
// 每次呼叫都會重新讀取資料來源；快取鍵包含快照內容，命中時只省下排名計算，結果的 Cached 為 true。
func (s *Service) Recommend(ctx context.Context, userID string, opts Options) (Result, error) {
	if strings.TrimSpace(userID) == "" {
		return Result{}, common.NewValidationError("user id is required")
	}
	if err := opts.Validate(s.maxLimit); err != nil {
		return Result{}, err
	}

	snap, err := s.LoadSnapshot(ctx, userID)
	if err != nil {
		common.LogError("讀取推薦資料失敗", zap.String("user_id", userID), zap.Error(err))
		return Result{}, err
	}

	key, keyErr := cacheKey(userID, opts, snap)
	if keyErr == nil {
		if result, ok := s.lookup(ctx, key); ok {
			return result, nil
		}
	}

	start := time.Now()
	result, err := s.ranker.Rank(snap, opts)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)
	s.observer.ObserveRanking(elapsed, len(snap.Catalog), result.TotalFound)

	common.LogDebug("推薦排名完成",
		zap.String("user_id", userID),
		zap.Int("catalog_size", len(snap.Catalog)),
		zap.Int("pantry_size", len(snap.Pantry)),
		zap.Int("total_found", result.TotalFound),
		zap.Int("returned", len(result.Recommendations)),
		zap.Duration("duration", elapsed),
	)

	if keyErr == nil {
		s.store(ctx, key, result)
	}
	return result, nil
}

// Context 產生聊天助理用的推薦文字
func (s *Service) Context(ctx context.Context, userID string) (string, error) {
	result, err := s.Recommend(ctx, userID, ContextOptions())
	if err != nil {
		return "", err
	}
	return FormatContext(result.Recommendations), nil
}

func (s *Service) lookup(ctx context.Context, key string) (Result, bool) {
	if s.cache == nil {
		return Result{}, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.observer.ObserveCache(false)
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取推薦快取失敗", zap.Error(err))
		}
		return Result{}, false
	}

	var result Result
	if err := common.ParseJSONBytes(data, &result); err != nil {
		s.observer.ObserveCache(false)
		common.LogWarn("推薦快取內容無法解析", zap.Error(err))
		return Result{}, false
	}

	s.observer.ObserveCache(true)
	result.Cached = true
	return result, true
}

func (s *Service) store(ctx context.Context, key string, result Result) {
	if s.cache == nil {
		return
	}

	data, err := common.ToJSON(result)
	if err != nil {
		common.LogWarn("推薦結果序列化失敗", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, []byte(data)); err != nil {
		common.LogWarn("寫入推薦快取失敗", zap.Error(err))
	}
}

// cacheKey 由使用者、參數與快照內容計算，資料變動時自然失效
func cacheKey(userID string, opts Options, snap recipe.Snapshot) (string, error) {
	payload, err := common.ToJSON(struct {
		UserID   string          `json:"user_id"`
		Options  Options         `json:"options"`
		Snapshot recipe.Snapshot `json:"snapshot"`
	}{userID, opts, snap})
	if err != nil {
		return "", err
	}
	return common.HashString(payload), nil
}
