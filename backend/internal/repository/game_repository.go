package repository

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/domain/catalog"
	"gamecrowd/backend/internal/domain/pledge"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameListFilter 描述游戏分页查询的条件，Offset/Limit 已由上层计算完毕。
type GameListFilter struct {
	Offset int
	Limit  int
}

// GameRepository 负责游戏的持久化操作。
type GameRepository struct {
	db *gorm.DB
}

// NewGameRepository 构造游戏仓储。
func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create 写入新的游戏记录。
func (r *GameRepository) Create(ctx context.Context, entity *catalog.Game) error {
	if entity == nil {
		return errors.New("game entity is nil")
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

// FindByID 查询游戏详情，预加载分类与发行商供完整表示内嵌使用。
func (r *GameRepository) FindByID(ctx context.Context, id uint) (*catalog.Game, error) {
	var entity catalog.Game
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Publisher").
		Where("id = ?", id).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindByTitle 按标题查询游戏，供种子导入跳过已存在的记录。
func (r *GameRepository) FindByTitle(ctx context.Context, title string) (*catalog.Game, error) {
	var entity catalog.Game
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List 返回一页游戏及总条数。总数与分页切片来自同一个基础查询，
// 每页都带着预加载的关联，避免渲染时的额外往返。
func (r *GameRepository) List(ctx context.Context, filter GameListFilter) ([]catalog.Game, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&catalog.Game{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count games: %w", err)
	}

	var entities []catalog.Game
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Publisher").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&entities).Error; err != nil {
		return nil, 0, fmt.Errorf("list games: %w", err)
	}
	return entities, total, nil
}

// Save 持久化对已有游戏实体的修改。
func (r *GameRepository) Save(ctx context.Context, entity *catalog.Game) error {
	if entity == nil {
		return errors.New("game entity is nil")
	}
	// Omit 关联防止 Save 顺带回写分类/发行商行。
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// DeleteCascade 在单个事务里删除游戏及其全部解锁目标与订阅，
// 保证不会留下悬空外键，也不会出现部分删除。
func (r *GameRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&pledge.StretchGoal{}).Error; err != nil {
			return fmt.Errorf("delete game stretch goals: %w", err)
		}
		if err := tx.Where("game_id = ?", id).Delete(&pledge.Subscription{}).Error; err != nil {
			return fmt.Errorf("delete game subscriptions: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&catalog.Game{})
		if result.Error != nil {
			return fmt.Errorf("delete game: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
