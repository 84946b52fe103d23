package db

import (
	"github.com/devtree/internal/links"
	"gorm.io/gorm"
)

// User 定义了用户与其公开主页的聚合模型
// Handle 是公开主页的唯一短标识，Links 以 JSON 文本列保存社交链接列表
// Visits 仅由 visit 类型的统计事件递增
type User struct {
	gorm.Model
	Handle      string     `gorm:"size:80;uniqueIndex;not null"`
	Name        string     `gorm:"size:120;not null"`
	Email       string     `gorm:"size:255;uniqueIndex;not null"`
	Password    string     `gorm:"not null"`
	Description string     `gorm:"type:text"`
	Image       string     `gorm:"size:512"`
	Links       links.List `gorm:"type:text"`
	Visits      uint       `gorm:"default:0"`
}

// TableName 指定自定义表名。
func (User) TableName() string {
	return "users"
}
