package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 令牌有效期与原始产品保持一致：180 天
const tokenTTL = 180 * 24 * time.Hour

// ErrInvalidToken 在令牌缺失、签名不符或已过期时返回
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer 负责签发与校验承载用户身份的 HS256 令牌。
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer 构造 TokenIssuer。
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// WithClock 允许测试固定时间源。
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	if now != nil {
		t.now = now
	}
	return t
}

// Generate 为指定用户签发令牌，Subject 存放用户主键。
func (t *TokenIssuer) Generate(userID uint) (string, error) {
	issuedAt := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse 校验令牌并还原其中的用户主键。
// 任何解析失败都折叠为 ErrInvalidToken，避免向调用方泄露细节。
func (t *TokenIssuer) Parse(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
