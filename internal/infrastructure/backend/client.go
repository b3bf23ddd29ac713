package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/infrastructure/config"
	"pantry-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Client 從主後端讀取庫存、偏好與食譜目錄
type Client struct {
	client *resty.Client
}

// NewClient 創建後端客戶端
func NewClient(cfg *config.SourceConfig) (*Client, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("backend base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "pantry-recommender")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	common.LogInfo("後端資料來源已設定",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", timeout),
	)

	return &Client{client: client}, nil
}

// Kind 資料來源種類
func (c *Client) Kind() string {
	return "http"
}

// Ping 檢查後端是否可用
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("backend health returned status %d", resp.StatusCode())
	}
	return nil
}

// GetPantry 讀取使用者庫存，保持後端回傳的順序
func (c *Client) GetPantry(ctx context.Context, userID string) ([]recipe.PantryItem, error) {
	var rows []stockItemDTO
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("user_id", userID).
		SetResult(&rows).
		Get("/api/v1/users/{user_id}/stock")
	if err := checkResponse("stock", resp, err); err != nil {
		return nil, err
	}

	items := make([]recipe.PantryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

// GetPreferences 讀取使用者偏好；後端回傳 404 時視為沒有設定
func (c *Client) GetPreferences(ctx context.Context, userID string) (*recipe.Preferences, error) {
	var row preferencesDTO
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("user_id", userID).
		SetResult(&row).
		Get("/api/v1/users/{user_id}/preferences")
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err := checkResponse("preferences", resp, err); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// ListActiveRecipes 讀取啟用中的食譜（含食材與營養資料）
func (c *Client) ListActiveRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	var rows []recipeDTO
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("include", "ingredients,nutrition").
		SetResult(&rows).
		Get("/api/v1/recipes")
	if err := checkResponse("recipes", resp, err); err != nil {
		return nil, err
	}

	recipes := make([]recipe.Recipe, 0, len(rows))
	for _, row := range rows {
		r := row.toDomain()
		if !r.IsActive {
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

func checkResponse(resource string, resp *resty.Response, err error) error {
	if err != nil {
		common.LogError("後端請求失敗", zap.String("resource", resource), zap.Error(err))
		return fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	if resp.IsError() {
		common.LogWarn("後端回應錯誤",
			zap.String("resource", resource),
			zap.Int("status", resp.StatusCode()),
		)
		return fmt.Errorf("backend returned status %d for %s", resp.StatusCode(), resource)
	}
	return nil
}
