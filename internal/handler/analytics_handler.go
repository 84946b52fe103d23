package handler

import (
	"net/http"

	"github.com/devtree/internal/service"
	"github.com/gin-gonic/gin"
)

type trackEventRequest struct {
	Type   string `json:"type" binding:"required,oneof=visit click"`
	Handle string `json:"handle" binding:"required"`
	Link   string `json:"link"`
}

// TrackEvent 接收公开主页上报的访问/点击事件
// 设备与浏览器信息从请求的 User-Agent 推断
func (a *API) TrackEvent(c *gin.Context) {
	var payload trackEventRequest
	if !bindJSON(c, &payload, "事件数据格式不正确") {
		return
	}

	err := a.analytics.TrackEvent(service.TrackEventInput{
		Type:      payload.Type,
		Handle:    payload.Handle,
		Link:      payload.Link,
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			respondError(c, http.StatusNotFound, "用户不存在")
		case service.ErrInvalidEventType:
			respondError(c, http.StatusBadRequest, "不支持的事件类型")
		default:
			respondError(c, http.StatusInternalServerError, "记录事件失败")
		}
		return
	}

	respondMsg(c, http.StatusCreated, "事件已记录")
}

// Dashboard 返回当前用户最近 30 天的按日统计
func (a *API) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}

	stats, err := a.analytics.DailyStats(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	c.JSON(http.StatusOK, stats)
}
