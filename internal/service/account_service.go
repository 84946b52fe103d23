package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devtree/internal/db"
	"github.com/devtree/internal/links"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken 在注册邮箱已被占用时返回
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidPassword 在登录口令不匹配时返回
	ErrInvalidPassword = errors.New("invalid password")
)

// AccountService 负责注册与登录校验
// 令牌签发由 handler 层的 TokenIssuer 完成，与业务校验解耦

type AccountService struct {
	db *gorm.DB
}

// NewAccountService 构造 AccountService
func NewAccountService(gdb *gorm.DB) *AccountService {
	return &AccountService{db: gdb}
}

// RegisterInput 描述注册时必须提供的字段
type RegisterInput struct {
	Handle   string
	Name     string
	Email    string
	Password string
}

// Register 创建新账号：邮箱唯一、handle 统一为规范化 slug、口令以 bcrypt 保存。
// 新账号的链接列表为空。
func (s *AccountService) Register(input RegisterInput) (*db.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing db.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	handle := slug.Make(input.Handle)
	err = s.db.Where("handle = ?", handle).First(&existing).Error
	if err == nil {
		return nil, ErrHandleTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check handle: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Handle:   handle,
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hashed),
		Links:    links.List{},
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate 按邮箱查找账号并校验口令。
// 账号不存在与口令错误是两类错误，调用方分别映射为 404 与 401。
func (s *AccountService) Authenticate(email, password string) (*db.User, error) {
	var user db.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}
