package catalog

import (
	"time"

	"gamecrowd/backend/internal/domain/validation"
)

// Game 是目录的核心实体，StretchGoal 与 Subscription 都通过外键挂在它下面。
type Game struct {
	ID          uint       `gorm:"primaryKey" json:"id"`         // 自增主键
	Title       string     `gorm:"size:255" json:"title"`        // 游戏标题
	Description string     `gorm:"type:text" json:"description"` // 游戏介绍
	StarRating  *float64   `json:"star_rating"`                  // 评分（0-5，可为空）
	CategoryID  uint       `gorm:"index" json:"category_id"`     // 所属分类 ID
	PublisherID uint       `gorm:"index" json:"publisher_id"`    // 所属发行商 ID
	Category    *Category  `json:"-"`                            // 分类关联，详情查询时预加载
	Publisher   *Publisher `json:"-"`                            // 发行商关联，详情查询时预加载
	CreatedAt   time.Time  `json:"created_at"`                   // 创建时间戳（gorm 自动维护）
	UpdatedAt   time.Time  `json:"updated_at"`                   // 更新时间戳（gorm 自动维护）
}

// TableName 指定数据库表名。
func (Game) TableName() string {
	return "games"
}

// NewGame 构造并校验一个游戏实体，外键的存在性由 service 层负责确认。
func NewGame(title, description string, categoryID, publisherID uint, starRating *float64) (*Game, error) {
	g := &Game{CategoryID: categoryID, PublisherID: publisherID}
	if err := g.SetTitle(title); err != nil {
		return nil, err
	}
	if err := g.SetDescription(description); err != nil {
		return nil, err
	}
	if err := g.SetStarRating(starRating); err != nil {
		return nil, err
	}
	return g, nil
}

// SetTitle 校验并写入标题。
func (g *Game) SetTitle(title string) error {
	value, err := validation.StringMin("Game title", title, 2)
	if err != nil {
		return err
	}
	g.Title = value
	return nil
}

// SetDescription 校验并写入介绍。
func (g *Game) SetDescription(description string) error {
	value, err := validation.StringMin("Description", description, 10)
	if err != nil {
		return err
	}
	g.Description = value
	return nil
}

// SetStarRating 校验并写入评分，nil 表示未评分。
func (g *Game) SetStarRating(rating *float64) error {
	if rating != nil && (*rating < 0 || *rating > 5) {
		return validation.Errorf("Star rating must be between 0 and 5")
	}
	g.StarRating = rating
	return nil
}

// ToDict 返回完整表示：关联已加载时内嵌精简的分类/发行商对象，未加载时为 null。
func (g *Game) ToDict() map[string]any {
	var starRating any
	if g.StarRating != nil {
		starRating = *g.StarRating
	}
	var category any
	if g.Category != nil {
		category = g.Category.ToDictMinimal()
	}
	var publisher any
	if g.Publisher != nil {
		publisher = g.Publisher.ToDictMinimal()
	}
	return map[string]any{
		"id":          g.ID,
		"title":       g.Title,
		"description": g.Description,
		"starRating":  starRating,
		"categoryId":  g.CategoryID,
		"publisherId": g.PublisherID,
		"category":    category,
		"publisher":   publisher,
	}
}
