package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/devtree/internal/service"
	"github.com/devtree/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// GetByHandle 返回指定 handle 的公开主页投影
// 简介同时提供原文与清洗后的 HTML 渲染结果
func (a *API) GetByHandle(c *gin.Context) {
	handle := strings.TrimSpace(c.Param("handle"))

	profile, err := a.profiles.GetByHandle(handle)
	if err != nil {
		if err == service.ErrUserNotFound {
			respondMsg(c, http.StatusNotFound, "用户不存在")
		} else {
			respondError(c, http.StatusInternalServerError, "获取主页失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"handle":          profile.Handle,
		"name":            profile.Name,
		"description":     profile.Description,
		"descriptionHtml": renderDescription(profile.Description),
		"image":           profile.Image,
		"links":           profile.Links,
		"visits":          profile.Visits,
	})
}

// Platforms 返回链接编辑器支持的平台目录及内置图标
func (a *API) Platforms(c *gin.Context) {
	c.JSON(http.StatusOK, view.PlatformOptions())
}

// Search 返回主页目录，规模受限的朴素列表而非排序搜索
func (a *API) Search(c *gin.Context) {
	summaries, err := a.profiles.Search()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取用户列表失败")
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// renderDescription 把简介按 GFM 渲染为 HTML 并做 XSS 清洗，渲染失败时退回原文。
func renderDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(description), &buf); err != nil {
		return sanitizer.Sanitize(description)
	}
	return sanitizer.Sanitize(buf.String())
}
