package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devtree/internal/db"
	"github.com/devtree/internal/links"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 在指定的用户或主页不存在时返回
	ErrUserNotFound = errors.New("user not found")
	// ErrHandleTaken 在 handle 已被其他用户占用时返回
	ErrHandleTaken = errors.New("handle already taken")
)

// searchLimit 限制目录列表的返回规模
const searchLimit = 20

// ProfileService 负责公开主页的读写
// 公开投影不暴露口令、邮箱与内部主键

type ProfileService struct {
	db *gorm.DB
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// PublicProfile 是对外暴露的主页投影
type PublicProfile struct {
	Handle      string     `json:"handle"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Links       links.List `json:"links"`
	Visits      uint       `json:"visits"`
}

// ProfileSummary 是目录列表用的最小投影
type ProfileSummary struct {
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateProfileInput 描述主页更新可设置的字段
type UpdateProfileInput struct {
	Handle      string
	Description string
	Links       links.List
}

// GetByID 按主键加载用户，认证中间件据此还原请求主体。
func (s *ProfileService) GetByID(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByHandle 返回指定 handle 的公开投影。
func (s *ProfileService) GetByHandle(handle string) (*PublicProfile, error) {
	var user db.User
	err := s.db.Where("handle = ?", strings.TrimSpace(handle)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return publicProjection(&user), nil
}

// UpdateProfile 覆盖写 handle、简介与链接列表。
// handle 先统一为规范化 slug，被其他用户占用时返回 ErrHandleTaken；
// 链接列表在落库前强制执行序号不变量。
func (s *ProfileService) UpdateProfile(user *db.User, input UpdateProfileInput) (*db.User, error) {
	normalized := slug.Make(input.Handle)

	var owner db.User
	err := s.db.Where("handle = ?", normalized).First(&owner).Error
	if err == nil && owner.ID != user.ID {
		return nil, ErrHandleTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check handle: %w", err)
	}

	user.Handle = normalized
	user.Description = strings.TrimSpace(input.Description)
	user.Links = links.Normalize(input.Links)

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}

// SetImage 更新头像地址。
func (s *ProfileService) SetImage(user *db.User, imageURL string) error {
	user.Image = strings.TrimSpace(imageURL)
	if err := s.db.Save(user).Error; err != nil {
		return fmt.Errorf("set image: %w", err)
	}
	return nil
}

// Search 返回有限规模的主页目录，按存储顺序排列。
func (s *ProfileService) Search() ([]ProfileSummary, error) {
	var users []db.User
	if err := s.db.Limit(searchLimit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}

	summaries := make([]ProfileSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, ProfileSummary{
			Handle:      user.Handle,
			Name:        user.Name,
			Description: user.Description,
			Image:       user.Image,
		})
	}
	return summaries, nil
}

func publicProjection(user *db.User) *PublicProfile {
	return &PublicProfile{
		Handle:      user.Handle,
		Name:        user.Name,
		Description: user.Description,
		Image:       user.Image,
		Links:       user.Links.Clone(),
		Visits:      user.Visits,
	}
}
