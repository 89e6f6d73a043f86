package repository

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/domain/catalog"

	"gorm.io/gorm"
)

// CategoryRepository 负责分类的持久化操作。
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 构造分类仓储。
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create 写入新的分类记录。
func (r *CategoryRepository) Create(ctx context.Context, entity *catalog.Category) error {
	if entity == nil {
		return errors.New("category entity is nil")
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// FindByID 查询分类详情，并回填其下的游戏数量。
func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*catalog.Category, error) {
	var entity catalog.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Game{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count category games: %w", err)
	}
	entity.GameCount = count
	return &entity, nil
}

// FindByName 按名称查询分类，主要供种子导入做幂等判断。
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var entity catalog.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// ListOrdered 返回按名称升序排列的全部分类，供列表接口使用。
func (r *CategoryRepository) ListOrdered(ctx context.Context) ([]catalog.Category, error) {
	var entities []catalog.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return entities, nil
}
