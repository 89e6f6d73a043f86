package repository

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/domain/pledge"

	"gorm.io/gorm"
)

// SubscriptionRepository 负责订阅的持久化操作。
// 注意退订是软删除：记录永远保留，只翻转 is_active。
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository 构造订阅仓储。
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create 写入新的订阅记录。
func (r *SubscriptionRepository) Create(ctx context.Context, entity *pledge.Subscription) error {
	if entity == nil {
		return errors.New("subscription entity is nil")
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// FindByID 查询订阅详情，软删除后的记录同样可以查到。
func (r *SubscriptionRepository) FindByID(ctx context.Context, id uint) (*pledge.Subscription, error) {
	var entity pledge.Subscription
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// ListActiveByGame 返回指定游戏下仍然生效的订阅。
func (r *SubscriptionRepository) ListActiveByGame(ctx context.Context, gameID uint) ([]pledge.Subscription, error) {
	var entities []pledge.Subscription
	if err := r.db.WithContext(ctx).
		Where("game_id = ? AND is_active = ?", gameID, true).
		Order("id ASC").
		Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list active subscriptions: %w", err)
	}
	return entities, nil
}

// Save 持久化对已有订阅实体的修改。
func (r *SubscriptionRepository) Save(ctx context.Context, entity *pledge.Subscription) error {
	if entity == nil {
		return errors.New("subscription entity is nil")
	}
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

// Deactivate 将订阅置为失效，即退订的软删除语义。
func (r *SubscriptionRepository) Deactivate(ctx context.Context, id uint) (*pledge.Subscription, error) {
	entity, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.IsActive {
		if err := r.db.WithContext(ctx).Model(entity).Update("is_active", false).Error; err != nil {
			return nil, fmt.Errorf("deactivate subscription: %w", err)
		}
		entity.IsActive = false
	}
	return entity, nil
}
