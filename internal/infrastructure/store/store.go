package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pantry-recommender/internal/core/matching"
	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/core/shopping"
	"pantry-recommender/internal/infrastructure/config"
	"pantry-recommender/internal/pkg/common"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

// Store 以 GORM 存取庫存、偏好、食譜與購物清單
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open 依設定開啟資料庫連線並建立資料表
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	db, err := gorm.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := New(db)
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	common.LogInfo("資料庫已連線", zap.String("driver", cfg.Driver))
	return s, nil
}

// New 包裝既有的 GORM 連線
func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate 自動建立或更新資料表
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&Recipe{},
		&RecipeIngredient{},
		&NutritionData{},
		&StockItem{},
		&UserPreferences{},
		&CookingHistory{},
		&ShoppingListItem{},
	).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// DB 回傳底層 GORM 連線
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close 關閉資料庫連線
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping 檢查資料庫是否可用
func (s *Store) Ping(ctx context.Context) error {
	return s.db.DB().PingContext(ctx)
}

// Kind 資料來源種類
func (s *Store) Kind() string {
	return "sql"
}

// GetPantry 依加入順序讀取使用者庫存
func (s *Store) GetPantry(ctx context.Context, userID string) ([]recipe.PantryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []StockItem
	if err := s.db.Where("user_id = ?", userID).Order("added_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query stock items: %w", err)
	}

	items := make([]recipe.PantryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, recipe.PantryItem{
			ID:       row.ID,
			Name:     row.Name,
			Quantity: row.Quantity,
			Unit:     row.Unit,
		})
	}
	return items, nil
}

// GetPreferences 讀取使用者偏好；沒有設定時回傳 nil, nil
func (s *Store) GetPreferences(ctx context.Context, userID string) (*recipe.Preferences, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var row UserPreferences
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	return row.toDomain(), nil
}

// RecipeQuery 食譜列表篩選條件，零值表示不篩選
type RecipeQuery struct {
	Difficulty  string
	MaxTime     int
	MinServings int
	IDs         []string
}

// ListActiveRecipes 讀取所有啟用中的食譜（含食材與營養資料），依名稱排序
func (s *Store) ListActiveRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	return s.ListRecipes(ctx, RecipeQuery{})
}

// ListRecipes 依條件讀取啟用中的食譜
func (s *Store) ListRecipes(ctx context.Context, q RecipeQuery) ([]recipe.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := s.withDetails(s.db).Where("is_active = ?", true)
	if q.Difficulty != "" {
		query = query.Where("difficulty = ?", q.Difficulty)
	}
	if q.MaxTime > 0 {
		query = query.Where("total_time <= ?", q.MaxTime)
	}
	if q.MinServings > 0 {
		query = query.Where("servings >= ?", q.MinServings)
	}
	if len(q.IDs) > 0 {
		query = query.Where("id IN (?)", q.IDs)
	}

	var rows []Recipe
	if err := query.Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	recipes := make([]recipe.Recipe, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, rows[i].toDomain())
	}
	return recipes, nil
}

// GetRecipe 讀取單一食譜；不存在時回傳 common.ErrRecipeNotFound
func (s *Store) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var row Recipe
	err := s.withDetails(s.db).Where("id = ?", id).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, common.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}

	r := row.toDomain()
	return &r, nil
}

func (s *Store) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Nutrition")
}

// CookResult 烹飪後的庫存變化
type CookResult struct {
	HistoryID string   `json:"history_id"`
	Removed   []string `json:"removed"`
	Updated   []string `json:"updated"`
}

// ApplyCooking 在同一交易中套用消耗計畫並寫入烹飪紀錄
func (s *Store) ApplyCooking(ctx context.Context, userID, recipeID string, servings int, plan []matching.Consumption) (*CookResult, error) {
	tx := s.db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	result := &CookResult{Removed: make([]string, 0), Updated: make([]string, 0)}
	for _, c := range plan {
		if c.PantryID == "" {
			continue
		}
		scoped := tx.Where("id = ? AND user_id = ?", c.PantryID, userID)
		if c.Remove {
			if err := scoped.Delete(&StockItem{}).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to remove stock item: %w", err)
			}
			result.Removed = append(result.Removed, c.PantryName)
			continue
		}
		err := tx.Model(&StockItem{}).
			Where("id = ? AND user_id = ?", c.PantryID, userID).
			Updates(map[string]interface{}{"quantity": c.Remaining, "updated_at": s.now()}).Error
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update stock item: %w", err)
		}
		result.Updated = append(result.Updated, c.PantryName)
	}

	history := CookingHistory{
		UserID:       userID,
		RecipeID:     recipeID,
		ServingsMade: servings,
		CookedAt:     s.now(),
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record cooking history: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit cooking: %w", err)
	}

	result.HistoryID = history.ID
	return result, nil
}

// MergeShoppingItems 將項目併入使用者未購買的購物清單：名稱相同（不分大小寫）時累加數量，否則新增
func (s *Store) MergeShoppingItems(ctx context.Context, userID string, items []shopping.Item) ([]ShoppingListItem, error) {
	tx := s.db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	saved := make([]ShoppingListItem, 0, len(items))
	for _, item := range items {
		var row ShoppingListItem
		err := tx.Where("user_id = ? AND is_purchased = ? AND LOWER(item_name) = ?", userID, false, strings.ToLower(strings.TrimSpace(item.Name))).
			First(&row).Error

		switch {
		case err == nil:
			row.Quantity += item.Quantity
			if err := tx.Save(&row).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to update shopping item: %w", err)
			}
		case gorm.IsRecordNotFoundError(err):
			row = ShoppingListItem{
				UserID:   userID,
				ItemName: strings.TrimSpace(item.Name),
				Quantity: item.Quantity,
				Unit:     item.Unit,
				AddedAt:  s.now(),
			}
			if len(item.Recipes) > 0 {
				row.Notes = "For: " + strings.Join(item.Recipes, ", ")
			}
			if err := tx.Create(&row).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to create shopping item: %w", err)
			}
		default:
			tx.Rollback()
			return nil, fmt.Errorf("failed to query shopping list: %w", err)
		}
		saved = append(saved, row)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit shopping list: %w", err)
	}
	return saved, nil
}

// ListShoppingItems 讀取使用者的購物清單
func (s *Store) ListShoppingItems(ctx context.Context, userID string) ([]ShoppingListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []ShoppingListItem
	if err := s.db.Where("user_id = ?", userID).Order("added_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query shopping list: %w", err)
	}
	return rows, nil
}
