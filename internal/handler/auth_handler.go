package handler

import (
	"net/http"

	"github.com/devtree/internal/service"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 处理注册请求
func (a *API) Register(c *gin.Context) {
	var payload registerRequest
	if !bindJSON(c, &payload, "请填写完整的注册信息") {
		return
	}

	_, err := a.accounts.Register(service.RegisterInput{
		Handle:   payload.Handle,
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		switch err {
		case service.ErrEmailTaken:
			respondError(c, http.StatusConflict, "该邮箱已被注册")
		case service.ErrHandleTaken:
			respondError(c, http.StatusConflict, "该用户名已被占用")
		default:
			respondError(c, http.StatusInternalServerError, "注册失败")
		}
		return
	}

	c.String(http.StatusCreated, "注册成功")
}

// Login 校验邮箱口令并签发访问令牌
func (a *API) Login(c *gin.Context) {
	var payload loginRequest
	if !bindJSON(c, &payload, "请填写邮箱和密码") {
		return
	}

	user, err := a.accounts.Authenticate(payload.Email, payload.Password)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			respondError(c, http.StatusNotFound, "用户不存在")
		case service.ErrInvalidPassword:
			respondError(c, http.StatusUnauthorized, "密码不正确")
		default:
			respondError(c, http.StatusInternalServerError, "登录失败")
		}
		return
	}

	token, err := a.tokens.Generate(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "签发令牌失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
