package router

import (
	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/handler"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerFileRoutes(api *gin.RouterGroup) {
	uploadLimiter := middleware.RateLimitMiddleware(consts.ConfigRateLimitUploadRPS, consts.ConfigRateLimitUploadBurst)

	files := api.Group("/file")
	files.Use(middleware.JWTAuth(), middleware.UserCheck())
	{
		files.POST("/upload", middleware.UploadBodyLimitMiddleware(), uploadLimiter, handler.UploadFile)
		files.GET("", handler.ListFiles)
		files.DELETE("/:fileId", handler.DeleteFile)
		files.PATCH("/:fileId/move", handler.MoveFile)
	}
}
