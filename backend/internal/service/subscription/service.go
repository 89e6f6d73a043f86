package subscription

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/domain/pledge"
	"gamecrowd/backend/internal/repository"

	"gorm.io/gorm"
)

var (
	// ErrSubscriptionNotFound 表示指定订阅不存在。
	ErrSubscriptionNotFound = errors.New("Subscription not found")
	// ErrGameNotFound 表示父级游戏不存在。
	ErrGameNotFound = errors.New("Game not found")
)

// Service 封装订阅的业务逻辑。退订是软删除：
// 历史记录保留并可按 ID 查询，只是从"生效订阅"列表里消失。
type Service struct {
	subscriptions *repository.SubscriptionRepository
	games         *repository.GameRepository
}

// NewService 构造订阅服务。
func NewService(subscriptions *repository.SubscriptionRepository, games *repository.GameRepository) *Service {
	return &Service{subscriptions: subscriptions, games: games}
}

// Subscribe 为指定游戏创建订阅，frequency 传空串时默认 weekly。
func (s *Service) Subscribe(ctx context.Context, gameID uint, email, frequency string) (*pledge.Subscription, error) {
	if err := s.resolveGame(ctx, gameID); err != nil {
		return nil, err
	}
	entity, err := pledge.NewSubscription(email, frequency, gameID)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptions.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// ListActiveForGame 返回指定游戏下仍然生效的订阅。
func (s *Service) ListActiveForGame(ctx context.Context, gameID uint) ([]pledge.Subscription, error) {
	if err := s.resolveGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.subscriptions.ListActiveByGame(ctx, gameID)
}

// Get 返回单个订阅实体，软删除后的记录同样可以查询。
func (s *Service) Get(ctx context.Context, id uint) (*pledge.Subscription, error) {
	entity, err := s.subscriptions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return entity, nil
}

// UpdateParams 描述局部更新的补丁：为 nil 的字段保持原值。
// JSON 里显式写 null 与省略字段同样视作"未提供"。
type UpdateParams struct {
	Frequency *string
	IsActive  *bool
}

// Update 调整订阅的频率或生效状态。
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*pledge.Subscription, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Frequency != nil {
		if err := entity.SetFrequency(*params.Frequency); err != nil {
			return nil, err
		}
	}
	if params.IsActive != nil {
		entity.IsActive = *params.IsActive
	}

	if err := s.subscriptions.Save(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Unsubscribe 软删除订阅：翻转 is_active，不移除行。
func (s *Service) Unsubscribe(ctx context.Context, id uint) (*pledge.Subscription, error) {
	entity, err := s.subscriptions.Deactivate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("unsubscribe: %w", err)
	}
	return entity, nil
}

func (s *Service) resolveGame(ctx context.Context, id uint) error {
	if _, err := s.games.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("resolve game: %w", err)
	}
	return nil
}
