package stretchgoal

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/domain/pledge"
	"gamecrowd/backend/internal/repository"

	"gorm.io/gorm"
)

var (
	// ErrGoalNotFound 表示指定解锁目标不存在。
	ErrGoalNotFound = errors.New("Stretch goal not found")
	// ErrGameNotFound 表示父级游戏不存在。
	ErrGameNotFound = errors.New("Game not found")
)

// Service 封装解锁目标的业务逻辑，创建与列表都以父级游戏为入口。
type Service struct {
	goals *repository.StretchGoalRepository
	games *repository.GameRepository
}

// NewService 构造解锁目标服务。
func NewService(goals *repository.StretchGoalRepository, games *repository.GameRepository) *Service {
	return &Service{goals: goals, games: games}
}

// ListForGame 返回指定游戏的全部解锁目标，游戏不存在时直接报 404 语义。
func (s *Service) ListForGame(ctx context.Context, gameID uint) ([]pledge.StretchGoal, error) {
	if err := s.resolveGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.goals.ListByGame(ctx, gameID)
}

// CreateParams 描述创建解锁目标所需的字段，必填项由 handler 层先行确认。
type CreateParams struct {
	Title         string
	Description   string
	GoalType      string
	TargetAmount  int
	CurrentAmount int
}

// Create 先确认父级游戏存在，再构造实体并落库。
func (s *Service) Create(ctx context.Context, gameID uint, params CreateParams) (*pledge.StretchGoal, error) {
	if err := s.resolveGame(ctx, gameID); err != nil {
		return nil, err
	}
	entity, err := pledge.NewStretchGoal(params.Title, params.Description, params.GoalType, params.TargetAmount, params.CurrentAmount, gameID)
	if err != nil {
		return nil, err
	}
	if err := s.goals.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Get 返回单个解锁目标实体。
func (s *Service) Get(ctx context.Context, id uint) (*pledge.StretchGoal, error) {
	entity, err := s.goals.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("find stretch goal: %w", err)
	}
	return entity, nil
}

// UpdateParams 描述局部更新的补丁：为 nil 的字段保持原值。
type UpdateParams struct {
	Title         *string
	Description   *string
	GoalType      *string
	TargetAmount  *int
	CurrentAmount *int
}

// Update 逐字段应用补丁，每个赋值都重跑与构造时相同的校验；
// 任何一条失败都会在落库前短路返回。
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*pledge.StretchGoal, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if err := entity.SetTitle(*params.Title); err != nil {
			return nil, err
		}
	}
	if params.Description != nil {
		if err := entity.SetDescription(*params.Description); err != nil {
			return nil, err
		}
	}
	if params.GoalType != nil {
		if err := entity.SetGoalType(*params.GoalType); err != nil {
			return nil, err
		}
	}
	if params.TargetAmount != nil {
		if err := entity.SetTargetAmount(*params.TargetAmount); err != nil {
			return nil, err
		}
	}
	if params.CurrentAmount != nil {
		if err := entity.SetCurrentAmount(*params.CurrentAmount); err != nil {
			return nil, err
		}
	}

	if err := s.goals.Save(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Delete 物理删除解锁目标。
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.goals.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalNotFound
		}
		return fmt.Errorf("delete stretch goal: %w", err)
	}
	return nil
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
