package catalog

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/repository"

	"gorm.io/gorm"
)

// 目录查询失败时返回给客户端的提示语，handler 层直接透传。
var (
	// ErrCategoryNotFound 表示指定分类不存在。
	ErrCategoryNotFound = errors.New("Category not found")
	// ErrPublisherNotFound 表示指定发行商不存在。
	ErrPublisherNotFound = errors.New("Publisher not found")
)

// Service 封装分类与发行商的只读目录逻辑。
// 这两类实体由种子导入维护，API 层只暴露查询。
type Service struct {
	categories *repository.CategoryRepository
	publishers *repository.PublisherRepository
}

// NewService 构造目录服务。
func NewService(categories *repository.CategoryRepository, publishers *repository.PublisherRepository) *Service {
	return &Service{categories: categories, publishers: publishers}
}

// ListCategories 返回按名称排序的分类精简表示，供下拉框填充。
func (s *Service) ListCategories(ctx context.Context) ([]map[string]any, error) {
	entities, err := s.categories.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	result := make([]map[string]any, 0, len(entities))
	for i := range entities {
		result = append(result, entities[i].ToDictMinimal())
	}
	return result, nil
}

// GetCategory 返回单个分类的完整表示，包含派生的游戏数量。
func (s *Service) GetCategory(ctx context.Context, id uint) (map[string]any, error) {
	entity, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return entity.ToDict(), nil
}

// ListPublishers 返回按名称排序的发行商精简表示。
func (s *Service) ListPublishers(ctx context.Context) ([]map[string]any, error) {
	entities, err := s.publishers.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	result := make([]map[string]any, 0, len(entities))
	for i := range entities {
		result = append(result, entities[i].ToDictMinimal())
	}
	return result, nil
}

// GetPublisher 返回单个发行商的完整表示。
func (s *Service) GetPublisher(ctx context.Context, id uint) (map[string]any, error) {
	entity, err := s.publishers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublisherNotFound
		}
		return nil, fmt.Errorf("find publisher: %w", err)
	}
	return entity.ToDict(), nil
}
