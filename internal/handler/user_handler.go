package handler

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devtree/internal/db"
	"github.com/devtree/internal/links"
	"github.com/devtree/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// 头像最长边超过该值时会被等比缩小
const avatarMaxEdge = 512

type updateProfileRequest struct {
	Handle      string     `json:"handle" binding:"required"`
	Description string     `json:"description"`
	Links       links.List `json:"links"`
}

// GetUser 返回当前登录用户的主页数据，口令与邮箱不下发
func (a *API) GetUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}

	c.JSON(http.StatusOK, userPayload(user))
}

// UpdateProfile 覆盖写当前用户的 handle、简介与链接列表
func (a *API) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}

	var payload updateProfileRequest
	if !bindJSON(c, &payload, "请填写完整的主页信息") {
		return
	}

	updated, err := a.profiles.UpdateProfile(user, service.UpdateProfileInput{
		Handle:      payload.Handle,
		Description: payload.Description,
		Links:       payload.Links,
	})
	if err != nil {
		if err == service.ErrHandleTaken {
			respondError(c, http.StatusConflict, "该用户名已被占用")
		} else {
			respondError(c, http.StatusInternalServerError, "更新主页失败")
		}
		return
	}

	c.JSON(http.StatusOK, userPayload(updated))
}

// UploadImage 处理头像上传：校验图片类型、按需缩小后落盘，并更新主页头像地址
func (a *API) UploadImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "只允许上传图片文件")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "创建上传目录失败")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.uploadDir, newFilename)

	if err := a.saveAvatar(c, file, filePath); err != nil {
		respondError(c, http.StatusInternalServerError, "保存图片失败")
		return
	}

	fileURL := strings.TrimRight(a.uploadURL, "/") + "/" + newFilename
	if err := a.profiles.SetImage(user, fileURL); err != nil {
		respondError(c, http.StatusInternalServerError, "更新头像失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": fileURL})
}

// saveAvatar 落盘上传的头像。可解码的 JPEG/PNG 会按需等比缩小后重编码，
// 其余格式原样保存。
func (a *API) saveAvatar(c *gin.Context, file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, format, err := image.Decode(src)
	if err != nil {
		// 解码不了就原样保存
		return c.SaveUploadedFile(file, path)
	}

	img = shrinkToFit(img, avatarMaxEdge)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case "jpeg":
		return jpeg.Encode(out, img, &jpeg.Options{Quality: 90})
	default:
		return png.Encode(out, img)
	}
}

// shrinkToFit 把图片等比缩小到最长边不超过 maxEdge，小图原样返回。
func shrinkToFit(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxEdge && height <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(width)
	if height > width {
		scale = float64(maxEdge) / float64(height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(width)*scale), int(float64(height)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func userPayload(user *db.User) gin.H {
	return gin.H{
		"handle":      user.Handle,
		"name":        user.Name,
		"description": user.Description,
		"image":       user.Image,
		"links":       user.Links,
		"visits":      user.Visits,
	}
}
