package links

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SocialLink 表示个人主页中的一条社交链接
// Enabled 的条目携带从 1 开始的连续展示序号，Disabled 的条目序号恒为 0
type SocialLink struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
	ID      int    `json:"id"`
}

// List 是社交链接列表，在数据库中以 JSON 文本列持久化。
// 空值或无法解析的历史数据在读取时一律当作空列表处理。
type List []SocialLink

// platformOrder 定义平台的固定展示顺序，序号重排时以此为准
var platformOrder = []string{
	"facebook",
	"github",
	"instagram",
	"x",
	"youtube",
	"tiktok",
	"twitch",
	"linkedin",
}

// Platforms 返回支持的平台集合，顺序即固定展示顺序。
func Platforms() []string {
	out := make([]string, len(platformOrder))
	copy(out, platformOrder)
	return out
}

// IsKnownPlatform 判断平台名是否在固定平台集合内。
func IsKnownPlatform(name string) bool {
	return platformIndex(name) < len(platformOrder)
}

func platformIndex(name string) int {
	for i, p := range platformOrder {
		if p == name {
			return i
		}
	}
	// 未知平台排在已知平台之后，保持稳定
	return len(platformOrder)
}

// Parse 将持久化文本解析为链接列表。
// 空串、null 或非法 JSON 都返回空列表而不是错误，历史脏数据不会让读取失败。
func Parse(raw string) List {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return List{}
	}

	var list List
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return List{}
	}
	if list == nil {
		return List{}
	}
	return list
}

// Serialize 将列表编码为持久化文本，空列表编码为 "[]"。
func (l List) Serialize() string {
	if len(l) == 0 {
		return "[]"
	}
	data, err := json.Marshal(l)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Clone 返回列表的深拷贝，避免调用方共享底层数组。
func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Find 按平台名查找条目，未找到返回 -1。
func (l List) Find(name string) int {
	for i, link := range l {
		if link.Name == name {
			return i
		}
	}
	return -1
}

// Enabled 返回启用子集，保持原有相对顺序。
func (l List) Enabled() List {
	out := make(List, 0, len(l))
	for _, link := range l {
		if link.Enabled {
			out = append(out, link)
		}
	}
	return out
}

// Disabled 返回停用子集，保持原有相对顺序。
func (l List) Disabled() List {
	out := make(List, 0, len(l))
	for _, link := range l {
		if !link.Enabled {
			out = append(out, link)
		}
	}
	return out
}

// Value 实现 driver.Valuer，用于 GORM 写入文本列。
func (l List) Value() (driver.Value, error) {
	return l.Serialize(), nil
}

// Scan 实现 sql.Scanner，脏数据按空列表处理，与 Parse 行为一致。
func (l *List) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = List{}
	case string:
		*l = Parse(v)
	case []byte:
		*l = Parse(string(v))
	default:
		return fmt.Errorf("unsupported links column type %T", value)
	}
	return nil
}

// GormDataType 指定迁移时生成的列类型。
func (List) GormDataType() string {
	return "text"
}

// ErrInvalidURL 在尝试用非法 URL 启用链接时返回
var ErrInvalidURL = errors.New("invalid link url")

// IsValidURL 校验 URL 是否为带主机名的绝对地址。
func IsValidURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
