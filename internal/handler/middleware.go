package handler

import (
	"net/http"
	"strings"

	"github.com/devtree/internal/db"
	"github.com/devtree/internal/service"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "__current_user"

// AuthRequired 校验 Authorization: Bearer <token> 并把对应用户挂到请求上下文。
// 令牌缺失或非法返回 401；令牌有效但用户已被删除返回 404。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")
		if bearer == "" {
			respondError(c, http.StatusUnauthorized, "未提供访问令牌")
			c.Abort()
			return
		}

		parts := strings.SplitN(bearer, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			respondError(c, http.StatusUnauthorized, "访问令牌格式不正确")
			c.Abort()
			return
		}

		userID, err := a.tokens.Parse(parts[1])
		if err != nil {
			respondError(c, http.StatusUnauthorized, "访问令牌无效或已过期")
			c.Abort()
			return
		}

		user, err := a.profiles.GetByID(userID)
		if err != nil {
			if err == service.ErrUserNotFound {
				respondError(c, http.StatusNotFound, "用户不存在")
			} else {
				respondError(c, http.StatusInternalServerError, "加载用户失败")
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// currentUser 取出认证中间件放入上下文的用户。
func currentUser(c *gin.Context) (*db.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*db.User)
	return user, ok
}
