package router

import (
	"github.com/Deepanshu902/Google-Drive-Clone/internal/handler"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerSharedRoutes(api *gin.RouterGroup) {
	shared := api.Group("/shared")
	shared.Use(middleware.JWTAuth(), middleware.UserCheck())
	{
		shared.POST("/share", handler.Share)
		shared.PATCH("/:sharedId/update", handler.UpdateAccess)
		shared.DELETE("/:sharedId/remove", handler.RemoveAccess)
		shared.GET("/user-resources", handler.ListSharedWithMe)
		shared.GET("/:resourceId/users", handler.ListGrantees)
	}
}
