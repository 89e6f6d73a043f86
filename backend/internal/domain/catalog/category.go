package catalog

import (
	"time"

	"gamecrowd/backend/internal/domain/validation"
)

// Category represents a persisted game category referenced by catalog games.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`            // 自增主键
	Name        string    `gorm:"size:100;uniqueIndex" json:"name"` // 分类名称（唯一）
	Description string    `gorm:"type:text" json:"description"`     // 分类介绍
	CreatedAt   time.Time `json:"created_at"`                       // 创建时间戳（gorm 自动维护）
	UpdatedAt   time.Time `json:"updated_at"`                       // 更新时间戳（gorm 自动维护）

	// GameCount 为派生字段，仅在详情查询时由仓储层回填，不入库。
	GameCount int64 `gorm:"-" json:"-"`
}

// TableName 指定数据库表名。
func (Category) TableName() string {
	return "categories"
}

// NewCategory 构造并校验一个分类实体。
func NewCategory(name, description string) (*Category, error) {
	c := &Category{}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if err := c.SetDescription(description); err != nil {
		return nil, err
	}
	return c, nil
}

// SetName 校验并写入分类名称，创建与更新共用同一条规则。
func (c *Category) SetName(name string) error {
	value, err := validation.StringMin("Category name", name, 2)
	if err != nil {
		return err
	}
	c.Name = value
	return nil
}

// SetDescription 校验并写入分类介绍。
func (c *Category) SetDescription(description string) error {
	value, err := validation.StringMin("Description", description, 10)
	if err != nil {
		return err
	}
	c.Description = value
	return nil
}

// ToDictMinimal 返回列表接口使用的精简表示（仅 id 与 name），
// 避免列表页为统计游戏数量触发 N+1 查询。
func (c *Category) ToDictMinimal() map[string]any {
	return map[string]any{
		"id":   c.ID,
		"name": c.Name,
	}
}

// ToDict 返回详情接口使用的完整表示。
func (c *Category) ToDict() map[string]any {
	return map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"gameCount":   c.GameCount,
	}
}
