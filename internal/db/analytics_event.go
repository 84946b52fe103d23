package db

import "time"

// 统计事件类型，visit 会同步递增用户的访问计数
const (
	EventTypeVisit = "visit"
	EventTypeClick = "click"
)

// AnalyticsEvent 记录公开主页上的访问与点击事件
// 事件只追加，不修改也不删除；UserID 是对用户的弱引用
type AnalyticsEvent struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index:idx_analytics_user_time"`
	Type       string    `gorm:"size:10;not null"`
	Link       string    `gorm:"size:512"`
	Device     string    `gorm:"size:40;default:Unknown"`
	Browser    string    `gorm:"size:60;default:Unknown"`
	OccurredAt time.Time `gorm:"index:idx_analytics_user_time"`
	CreatedAt  time.Time
}

// TableName 指定自定义表名。
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
