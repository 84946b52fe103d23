package main

import (
	"fmt"
	"log"
	"time"

	"github.com/devtree/internal/config"
	"github.com/devtree/internal/db"
	"github.com/devtree/internal/links"
	"golang.org/x/crypto/bcrypt"
)

// 演示数据生成器，方便本地联调前端
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	createDemoUsers()
	createDemoEvents()

	fmt.Println("演示数据生成完成！")
	fmt.Println("账号: demo@devtree.local (密码: demo12345)")
}

// 创建演示用户
func createDemoUsers() {
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("用户已存在，跳过创建")
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	demo := db.User{
		Handle:      "demo",
		Name:        "Demo Maker",
		Email:       "demo@devtree.local",
		Password:    string(hashedPassword),
		Description: "**全栈工程师**\n\n用一个页面收拢所有社交入口。",
		Links: links.List{
			{Name: "github", URL: "https://github.com/demo", Enabled: true, ID: 1},
			{Name: "youtube", URL: "https://youtube.com/@demo", Enabled: true, ID: 2},
			{Name: "x", URL: "https://x.com/demo", Enabled: false, ID: 0},
		},
	}
	if err := db.DB.Create(&demo).Error; err != nil {
		log.Printf("创建演示用户失败: %v", err)
		return
	}

	fmt.Println("✅ 演示用户创建完成")
}

// 回填过去两周的访问与点击事件
func createDemoEvents() {
	var user db.User
	if err := db.DB.Where("handle = ?", "demo").First(&user).Error; err != nil {
		log.Printf("未找到演示用户: %v", err)
		return
	}

	var count int64
	db.DB.Model(&db.AnalyticsEvent{}).Where("user_id = ?", user.ID).Count(&count)
	if count > 0 {
		fmt.Println("事件已存在，跳过创建")
		return
	}

	now := time.Now().UTC()
	var visits uint
	for day := 0; day < 14; day++ {
		occurred := now.AddDate(0, 0, -day)
		// 访问量随日期起伏，移动端占一半
		for i := 0; i <= day%3; i++ {
			device := "desktop"
			if i%2 == 1 {
				device = "mobile"
			}
			event := db.AnalyticsEvent{
				UserID:     user.ID,
				Type:       db.EventTypeVisit,
				Device:     device,
				Browser:    "Chrome",
				OccurredAt: occurred,
			}
			db.DB.Create(&event)
			visits++
		}
		if day%2 == 0 {
			click := db.AnalyticsEvent{
				UserID:     user.ID,
				Type:       db.EventTypeClick,
				Link:       "https://github.com/demo",
				Device:     "desktop",
				Browser:    "Firefox",
				OccurredAt: occurred,
			}
			db.DB.Create(&click)
		}
	}

	user.Visits = visits
	db.DB.Save(&user)

	fmt.Println("✅ 演示事件创建完成")
}
