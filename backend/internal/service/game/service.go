package game

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/domain/catalog"
	"gamecrowd/backend/internal/repository"

	"gorm.io/gorm"
)

// 分页参数的默认值与上限，与列表接口的对外契约一致。
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var (
	// ErrGameNotFound 表示指定游戏不存在。
	ErrGameNotFound = errors.New("Game not found")
	// ErrCategoryNotFound 表示外键引用的分类不存在。
	ErrCategoryNotFound = errors.New("Category not found")
	// ErrPublisherNotFound 表示外键引用的发行商不存在。
	ErrPublisherNotFound = errors.New("Publisher not found")
)

// Service 封装游戏资源的增删改查与外键校验。
type Service struct {
	games      *repository.GameRepository
	categories *repository.CategoryRepository
	publishers *repository.PublisherRepository
}

// NewService 构造游戏服务。
func NewService(games *repository.GameRepository, categories *repository.CategoryRepository, publishers *repository.PublisherRepository) *Service {
	return &Service{games: games, categories: categories, publishers: publishers}
}

// Pagination 描述列表接口返回的分页元数据。
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// List 返回一页游戏实体与分页信息。page 小于 1 按 1 处理，
// pageSize 缺省为 10 并被钳制在 [1,100]。
func (s *Service) List(ctx context.Context, page, pageSize int) ([]catalog.Game, Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	entities, total, err := s.games.List(ctx, repository.GameListFilter{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list games: %w", err)
	}

	meta := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
	return entities, meta, nil
}

// Get 返回单个游戏实体，关联已预加载。
func (s *Service) Get(ctx context.Context, id uint) (*catalog.Game, error) {
	entity, err := s.games.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return entity, nil
}

// CreateParams 描述创建游戏所需的字段，必填项由 handler 层先行确认。
type CreateParams struct {
	Title       string
	Description string
	CategoryID  uint
	PublisherID uint
	StarRating  *float64
}

// Create 先确认两个外键都能解析，再构造实体并落库。
// 校验失败发生在任何写入之前，不会留下半成品状态。
func (s *Service) Create(ctx context.Context, params CreateParams) (*catalog.Game, error) {
	if err := s.resolveCategory(ctx, params.CategoryID); err != nil {
		return nil, err
	}
	if err := s.resolvePublisher(ctx, params.PublisherID); err != nil {
		return nil, err
	}

	entity, err := catalog.NewGame(params.Title, params.Description, params.CategoryID, params.PublisherID, params.StarRating)
	if err != nil {
		return nil, err
	}
	if err := s.games.Create(ctx, entity); err != nil {
		return nil, err
	}
	// 重新加载以带出内嵌表示需要的关联。
	return s.Get(ctx, entity.ID)
}

// UpdateParams 描述局部更新的补丁：为 nil 的字段保持原值。
type UpdateParams struct {
	Title       *string
	Description *string
	CategoryID  *uint
	PublisherID *uint
	StarRating  *float64
}

// Update 逐字段应用补丁，每个赋值都重跑与构造时相同的校验。
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*catalog.Game, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		if err := s.resolveCategory(ctx, *params.CategoryID); err != nil {
			return nil, err
		}
		entity.CategoryID = *params.CategoryID
		entity.Category = nil
	}
	if params.PublisherID != nil {
		if err := s.resolvePublisher(ctx, *params.PublisherID); err != nil {
			return nil, err
		}
		entity.PublisherID = *params.PublisherID
		entity.Publisher = nil
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
	if params.StarRating != nil {
		if err := entity.SetStarRating(params.StarRating); err != nil {
			return nil, err
		}
	}

	if err := s.games.Save(ctx, entity); err != nil {
		return nil, err
	}
	return s.Get(ctx, entity.ID)
}

// Delete 级联删除游戏及其解锁目标与订阅。
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.games.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

func (s *Service) resolveCategory(ctx context.Context, id uint) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("resolve category: %w", err)
	}
	return nil
}

func (s *Service) resolvePublisher(ctx context.Context, id uint) error {
	if _, err := s.publishers.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPublisherNotFound
		}
		return fmt.Errorf("resolve publisher: %w", err)
	}
	return nil
}
