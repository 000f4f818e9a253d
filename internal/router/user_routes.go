package router

import (
	"github.com/Deepanshu902/Google-Drive-Clone/internal/handler"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc) {
	users := api.Group("/users")
	{
		// 公开入口，施加认证限流
		users.POST("/register", authLimiter, handler.Register)
		users.POST("/login", authLimiter, handler.Login)
		users.POST("/refresh-token", authLimiter, handler.RefreshToken)

		// 受保护路由
		authed := users.Group("")
		authed.Use(middleware.JWTAuth(), middleware.UserCheck())
		{
			authed.POST("/logout", handler.Logout)
			authed.GET("/current-user", handler.GetCurrentUser)
			authed.PATCH("/update-account-details", handler.UpdateAccountDetails)
			authed.POST("/change-password", handler.ChangePassword)
			authed.GET("/storage", handler.GetStorage)
			authed.GET("/search", handler.SearchUser)
		}
	}
}
