package repository

import (
	"context"
	"errors"
	"fmt"

	"gamecrowd/backend/internal/domain/catalog"

	"gorm.io/gorm"
)

// PublisherRepository 负责发行商的持久化操作。
type PublisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 构造发行商仓储。
func NewPublisherRepository(db *gorm.DB) *PublisherRepository {
	return &PublisherRepository{db: db}
}

// Create 写入新的发行商记录。
func (r *PublisherRepository) Create(ctx context.Context, entity *catalog.Publisher) error {
	if entity == nil {
		return errors.New("publisher entity is nil")
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return nil
}

// FindByID 查询发行商详情，并回填其下的游戏数量。
func (r *PublisherRepository) FindByID(ctx context.Context, id uint) (*catalog.Publisher, error) {
	var entity catalog.Publisher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Game{}).
		Where("publisher_id = ?", id).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count publisher games: %w", err)
	}
	entity.GameCount = count
	return &entity, nil
}

// FindByName 按名称查询发行商，主要供种子导入做幂等判断。
func (r *PublisherRepository) FindByName(ctx context.Context, name string) (*catalog.Publisher, error) {
	var entity catalog.Publisher
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// ListOrdered 返回按名称升序排列的全部发行商，供列表接口使用。
func (r *PublisherRepository) ListOrdered(ctx context.Context) ([]catalog.Publisher, error) {
	var entities []catalog.Publisher
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	return entities, nil
}
