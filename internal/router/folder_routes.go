package router

import (
	"github.com/Deepanshu902/Google-Drive-Clone/internal/handler"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerFolderRoutes(api *gin.RouterGroup) {
	folders := api.Group("/folder")
	folders.Use(middleware.JWTAuth(), middleware.UserCheck())
	{
		folders.POST("/createFolder", handler.CreateFolder)
		folders.GET("/list", handler.ListFolders)
		folders.PATCH("/:folderId/rename", handler.RenameFolder)
		folders.DELETE("/:folderId", handler.DeleteFolder)
	}
}
