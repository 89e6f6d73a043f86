package catalog

import (
	"time"

	"gamecrowd/backend/internal/domain/validation"
)

// Publisher represents a persisted game publisher seeking crowdfunding.
type Publisher struct {
	ID          uint      `gorm:"primaryKey" json:"id"`             // 自增主键
	Name        string    `gorm:"size:100;uniqueIndex" json:"name"` // 发行商名称（唯一）
	Description string    `gorm:"type:text" json:"description"`     // 发行商介绍
	CreatedAt   time.Time `json:"created_at"`                       // 创建时间戳（gorm 自动维护）
	UpdatedAt   time.Time `json:"updated_at"`                       // 更新时间戳（gorm 自动维护）

	// GameCount 为派生字段，仅在详情查询时由仓储层回填，不入库。
	GameCount int64 `gorm:"-" json:"-"`
}

// TableName 指定数据库表名。
func (Publisher) TableName() string {
	return "publishers"
}

// NewPublisher 构造并校验一个发行商实体。
func NewPublisher(name, description string) (*Publisher, error) {
	p := &Publisher{}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetDescription(description); err != nil {
		return nil, err
	}
	return p, nil
}

// SetName 校验并写入发行商名称。
func (p *Publisher) SetName(name string) error {
	value, err := validation.StringMin("Publisher name", name, 2)
	if err != nil {
		return err
	}
	p.Name = value
	return nil
}

// SetDescription 校验并写入发行商介绍。
func (p *Publisher) SetDescription(description string) error {
	value, err := validation.StringMin("Description", description, 10)
	if err != nil {
		return err
	}
	p.Description = value
	return nil
}

// ToDictMinimal 返回列表接口使用的精简表示（仅 id 与 name）。
func (p *Publisher) ToDictMinimal() map[string]any {
	return map[string]any{
		"id":   p.ID,
		"name": p.Name,
	}
}

// ToDict 返回详情接口使用的完整表示。
func (p *Publisher) ToDict() map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"gameCount":   p.GameCount,
	}
}
