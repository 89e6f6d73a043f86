package repository

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/domain/pledge"

	"gorm.io/gorm"
)

// StretchGoalRepository 负责解锁目标的持久化操作。
type StretchGoalRepository struct {
	db *gorm.DB
}

// NewStretchGoalRepository 构造解锁目标仓储。
func NewStretchGoalRepository(db *gorm.DB) *StretchGoalRepository {
	return &StretchGoalRepository{db: db}
}

// Create 写入新的解锁目标记录。
func (r *StretchGoalRepository) Create(ctx context.Context, entity *pledge.StretchGoal) error {
	if entity == nil {
		return errors.New("stretch goal entity is nil")
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create stretch goal: %w", err)
	}
	return nil
}

// FindByID 查询解锁目标详情。
func (r *StretchGoalRepository) FindByID(ctx context.Context, id uint) (*pledge.StretchGoal, error) {
	var entity pledge.StretchGoal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// ListByGame 返回指定游戏下的全部解锁目标。
func (r *StretchGoalRepository) ListByGame(ctx context.Context, gameID uint) ([]pledge.StretchGoal, error) {
	var entities []pledge.StretchGoal
	if err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id ASC").
		Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list stretch goals: %w", err)
	}
	return entities, nil
}

// Save 持久化对已有解锁目标实体的修改。
func (r *StretchGoalRepository) Save(ctx context.Context, entity *pledge.StretchGoal) error {
	if entity == nil {
		return errors.New("stretch goal entity is nil")
	}
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("save stretch goal: %w", err)
	}
	return nil
}

// Delete 物理删除解锁目标。
func (r *StretchGoalRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&pledge.StretchGoal{})
	if result.Error != nil {
		return fmt.Errorf("delete stretch goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
