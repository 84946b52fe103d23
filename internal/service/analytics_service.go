package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devtree/internal/db"
	"github.com/mileusna/useragent"
	"gorm.io/gorm"
)

// dailyStatsWindow 限定日报最多覆盖最近多少天
const dailyStatsWindow = 30

// ErrInvalidEventType 在事件类型不是 visit/click 时返回
var ErrInvalidEventType = errors.New("invalid event type")

// AnalyticsService 负责统计事件的采集与按日汇总。
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService 创建 AnalyticsService。
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb, now: time.Now}
}

// WithClock 允许测试固定时间源。
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	if now != nil {
		s.now = now
	}
	return s
}

// TrackEventInput 描述一次上报的事件
type TrackEventInput struct {
	Type      string
	Handle    string
	Link      string
	UserAgent string
}

// DailyStat 是单日的访问/点击汇总，按需计算，不落库。
type DailyStat struct {
	Date         string `json:"date"`
	Visits       int64  `json:"visits"`
	Clicks       int64  `json:"clicks"`
	MobileVisits int64  `json:"mobileVisits"`
}

// TrackEvent 记录一次访问或点击。
// visit 事件顺带递增用户的访问计数；计数更新与事件落库是两次独立写入，
// 中途失败留下的偏差对这类参考性指标是可接受的。
// link 字段不做格式校验，脏值原样入库。
func (s *AnalyticsService) TrackEvent(input TrackEventInput) error {
	eventType := strings.TrimSpace(input.Type)
	if eventType != db.EventTypeVisit && eventType != db.EventTypeClick {
		return ErrInvalidEventType
	}

	var user db.User
	err := s.db.Where("handle = ?", strings.TrimSpace(input.Handle)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("resolve handle: %w", err)
	}

	if eventType == db.EventTypeVisit {
		user.Visits++
		if err := s.db.Save(&user).Error; err != nil {
			return fmt.Errorf("bump visit counter: %w", err)
		}
	}

	device, browser := classifyClient(input.UserAgent)
	event := db.AnalyticsEvent{
		UserID:     user.ID,
		Type:       eventType,
		Link:       input.Link,
		Device:     device,
		Browser:    browser,
		OccurredAt: s.now().UTC(),
	}
	if err := s.db.Create(&event).Error; err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	return nil
}

// DailyStats 把事件日志折叠成按日汇总：每天的访问数、点击数与移动端事件数。
// mobileVisits 按设备维度统计，点击与访问都计入。
// 结果按日期升序排列，窗口取最近的 30 天。
func (s *AnalyticsService) DailyStats(userID uint) ([]DailyStat, error) {
	var rows []DailyStat
	err := s.db.Model(&db.AnalyticsEvent{}).
		Select("date(occurred_at) AS date, " +
			"SUM(CASE WHEN type = 'visit' THEN 1 ELSE 0 END) AS visits, " +
			"SUM(CASE WHEN type = 'click' THEN 1 ELSE 0 END) AS clicks, " +
			"SUM(CASE WHEN device = 'mobile' THEN 1 ELSE 0 END) AS mobile_visits").
		Where("user_id = ?", userID).
		Group("date(occurred_at)").
		Order("date DESC").
		Limit(dailyStatsWindow).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate daily stats: %w", err)
	}

	// 查询按日期降序取最近窗口，对外按升序返回
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// classifyClient 从 User-Agent 推断设备与浏览器，解析不出时回退到默认值。
func classifyClient(rawUA string) (device, browser string) {
	device, browser = "desktop", "Unknown"
	if strings.TrimSpace(rawUA) == "" {
		return device, browser
	}

	ua := useragent.Parse(rawUA)
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}
	if ua.Name != "" {
		browser = ua.Name
	}
	return device, browser
}
