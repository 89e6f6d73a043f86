package pledge

import (
	"strings"
	"time"

	"gamecrowd/backend/internal/domain/catalog"
	"gamecrowd/backend/internal/domain/validation"
)

// 订阅推送频率的取值集合。
const (
	FrequencyImmediate = "immediate"
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"

	// DefaultFrequency 是创建订阅时未指定频率的默认值。
	DefaultFrequency = FrequencyWeekly
)

// Subscription 表示某个支持者对游戏动态的订阅。
// 退订采用软删除（is_active 置 false），历史记录永不物理删除。
type Subscription struct {
	ID        uint          `gorm:"primaryKey" json:"id"`           // 自增主键
	Email     string        `gorm:"size:255" json:"email"`          // 订阅者邮箱（存储去除空白后的值）
	Frequency string        `gorm:"size:20" json:"frequency"`       // immediate / daily / weekly（统一小写）
	IsActive  bool          `gorm:"default:true" json:"is_active"`  // 订阅是否生效
	GameID    uint          `gorm:"index" json:"game_id"`           // 所属游戏 ID
	Game      *catalog.Game `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time     `json:"created_at"` // 创建时间戳（gorm 自动维护）
	UpdatedAt time.Time     `json:"updated_at"` // 更新时间戳（gorm 自动维护）
}

// TableName 指定数据库表名。
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription 构造并校验一个订阅，frequency 传空串时落到默认值。
func NewSubscription(email, frequency string, gameID uint) (*Subscription, error) {
	s := &Subscription{GameID: gameID, IsActive: true}
	if err := s.SetEmail(email); err != nil {
		return nil, err
	}
	if frequency == "" {
		frequency = DefaultFrequency
	}
	if err := s.SetFrequency(frequency); err != nil {
		return nil, err
	}
	return s, nil
}

// SetEmail 校验邮箱并存储去除首尾空白后的值。
func (s *Subscription) SetEmail(email string) error {
	value, err := validation.Email(email)
	if err != nil {
		return err
	}
	s.Email = value
	return nil
}

// SetFrequency 大小写不敏感地校验频率，统一以小写存储。
func (s *Subscription) SetFrequency(frequency string) error {
	normalized := strings.ToLower(frequency)
	switch normalized {
	case FrequencyImmediate, FrequencyDaily, FrequencyWeekly:
		s.Frequency = normalized
		return nil
	default:
		return validation.Errorf("Frequency must be one of immediate, daily, weekly")
	}
}

// ToDict 返回完整表示。
func (s *Subscription) ToDict() map[string]any {
	return map[string]any{
		"id":        s.ID,
		"email":     s.Email,
		"frequency": s.Frequency,
		"isActive":  s.IsActive,
		"gameId":    s.GameID,
	}
}
