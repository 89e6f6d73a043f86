package pledge

import (
	"math"
	"time"

	"gamecrowd/backend/internal/domain/catalog"
	"gamecrowd/backend/internal/domain/validation"
)

// 解锁目标的两种统计口径：按认捐总额或按认捐人数。
const (
	GoalTypePledgeTotal = "pledge_total"
	GoalTypePledgeCount = "pledge_count"
)

// GoalTypes 列出允许的目标类型，校验与提示信息共用。
var GoalTypes = []string{GoalTypePledgeTotal, GoalTypePledgeCount}

// StretchGoal 表示挂在某个游戏下的众筹解锁目标。
type StretchGoal struct {
	ID            uint          `gorm:"primaryKey" json:"id"`          // 自增主键
	Title         string        `gorm:"size:100" json:"title"`         // 目标标题
	Description   string        `gorm:"type:text" json:"description"`  // 目标介绍
	GoalType      string        `gorm:"size:20" json:"goal_type"`      // pledge_total / pledge_count
	TargetAmount  int           `json:"target_amount"`                 // 目标值（金额或人数）
	CurrentAmount int           `gorm:"default:0" json:"current_amount"` // 当前进度值
	GameID        uint          `gorm:"index" json:"game_id"`          // 所属游戏 ID
	Game          *catalog.Game `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time     `json:"created_at"` // 创建时间戳（gorm 自动维护）
	UpdatedAt     time.Time     `json:"updated_at"` // 更新时间戳（gorm 自动维护）
}

// TableName 指定数据库表名。
func (StretchGoal) TableName() string {
	return "stretch_goals"
}

// NewStretchGoal 构造并校验一个解锁目标，游戏的存在性由 service 层负责确认。
func NewStretchGoal(title, description, goalType string, targetAmount, currentAmount int, gameID uint) (*StretchGoal, error) {
	sg := &StretchGoal{GameID: gameID}
	if err := sg.SetTitle(title); err != nil {
		return nil, err
	}
	if err := sg.SetDescription(description); err != nil {
		return nil, err
	}
	if err := sg.SetGoalType(goalType); err != nil {
		return nil, err
	}
	if err := sg.SetTargetAmount(targetAmount); err != nil {
		return nil, err
	}
	if err := sg.SetCurrentAmount(currentAmount); err != nil {
		return nil, err
	}
	return sg, nil
}

// SetTitle 校验并写入标题。
func (sg *StretchGoal) SetTitle(title string) error {
	value, err := validation.StringMin("Stretch goal title", title, 2)
	if err != nil {
		return err
	}
	sg.Title = value
	return nil
}

// SetDescription 校验并写入介绍。
func (sg *StretchGoal) SetDescription(description string) error {
	value, err := validation.StringMin("Description", description, 10)
	if err != nil {
		return err
	}
	sg.Description = value
	return nil
}

// SetGoalType 校验并写入目标类型。
func (sg *StretchGoal) SetGoalType(goalType string) error {
	value, err := validation.OneOf("Goal type", goalType, GoalTypes)
	if err != nil {
		return err
	}
	sg.GoalType = value
	return nil
}

// SetTargetAmount 校验并写入目标值，必须为正数。
func (sg *StretchGoal) SetTargetAmount(amount int) error {
	if amount <= 0 {
		return validation.Errorf("Target amount must be greater than 0")
	}
	sg.TargetAmount = amount
	return nil
}

// SetCurrentAmount 校验并写入当前进度值，不允许为负。
func (sg *StretchGoal) SetCurrentAmount(amount int) error {
	if amount < 0 {
		return validation.Errorf("Current amount cannot be negative")
	}
	sg.CurrentAmount = amount
	return nil
}

// ProgressPercentage 按当前存储值实时计算完成百分比（保留一位小数），
// 进度超过目标时可以大于 100。
func (sg *StretchGoal) ProgressPercentage() float64 {
	if sg.TargetAmount <= 0 {
		return 0
	}
	pct := float64(sg.CurrentAmount) / float64(sg.TargetAmount) * 100
	return math.Round(pct*10) / 10
}

// IsAchieved 判断目标是否已达成。
func (sg *StretchGoal) IsAchieved() bool {
	return sg.CurrentAmount >= sg.TargetAmount
}

// ToDict 返回完整表示，派生字段在每次调用时重新计算，绝不缓存。
func (sg *StretchGoal) ToDict() map[string]any {
	return map[string]any{
		"id":                 sg.ID,
		"title":              sg.Title,
		"description":        sg.Description,
		"goalType":           sg.GoalType,
		"targetAmount":       sg.TargetAmount,
		"currentAmount":      sg.CurrentAmount,
		"progressPercentage": sg.ProgressPercentage(),
		"isAchieved":         sg.IsAchieved(),
		"gameId":             sg.GameID,
	}
}
