package router

import (
	"log"

	"github.com/devtree/internal/auth"
	"github.com/devtree/internal/config"
	"github.com/devtree/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	"gorm.io/gorm"
)

// Setup 配置 Gin 引擎和路由
func Setup(gdb *gorm.DB, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	api := handler.NewAPI(gdb, tokens, cfg.UploadDir, cfg.UploadURLPath)

	// 上传的头像走静态文件服务
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", api.Register)
		authGroup.POST("/login", api.Login)
	}

	user := r.Group("/user")
	user.Use(api.AuthRequired())
	{
		user.GET("", api.GetUser)
		user.PATCH("", api.UpdateProfile)
		user.POST("/image", api.UploadImage)
	}

	// 匿名上报入口挂限流，防止刷量把事件表灌爆
	r.POST("/analytics", trackLimiter(cfg.TrackRate), api.TrackEvent)
	r.GET("/analytics/dashboard", api.AuthRequired(), api.Dashboard)

	r.GET("/platforms", api.Platforms)
	r.GET("/search", api.Search)
	r.GET("/:handle", api.GetByHandle)

	return r
}

// trackLimiter 基于内存存储构建 IP 维度的限流中间件。
func trackLimiter(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		log.Printf("invalid track rate %q, falling back to 120-M", formatted)
		rate, _ = limiter.NewRateFromFormatted("120-M")
	}
	return mgin.NewMiddleware(limiter.New(memorystore.NewStore(), rate))
}
