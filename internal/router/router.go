package router

import (
	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/handler"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/middleware"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine) {
	// 注册全局安全标头中间件
	r.Use(middleware.SecurityHeaders())

	// 存活探针不走认证和限流
	r.GET("/healthz", handler.Healthz)

	api := r.Group("/api/v1")
	// 应用请求体大小限制中间件
	api.Use(middleware.BodyLimitMiddleware())

	// 认证限流：读取配置（在多个域路由中复用同一个实例，保持行为一致）
	authLimiter := middleware.RateLimitMiddleware(consts.ConfigRateLimitAuthRPS, consts.ConfigRateLimitAuthBurst)

	registerUserRoutes(api, authLimiter)
	registerFolderRoutes(api)
	registerFileRoutes(api)
	registerSharedRoutes(api)
}
