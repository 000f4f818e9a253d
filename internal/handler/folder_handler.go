package handler

import (
	"net/http"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateFolder 创建文件夹
func CreateFolder(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		FolderName     string `json:"folder_name" binding:"required"`
		ParentFolderID *uint  `json:"parent_folder_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请提供文件夹名称"})
		return
	}

	folder, err := service.CreateFolder(uid, req.FolderName, req.ParentFolderID)
	if err != nil {
		WriteServiceError(c, err, "创建文件夹失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "文件夹创建成功",
		"folder":  folder,
	})
}

// RenameFolder 重命名文件夹
func RenameFolder(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	folderID, ok := parseIDParam(c, "folderId")
	if !ok {
		return
	}

	var req struct {
		NewName string `json:"new_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请提供新的文件夹名称"})
		return
	}

	folder, err := service.RenameFolder(folderID, uid, req.NewName)
	if err != nil {
		WriteServiceError(c, err, "重命名失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "重命名成功",
		"folder":  folder,
	})
}

// DeleteFolder 标记删除文件夹
func DeleteFolder(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	folderID, ok := parseIDParam(c, "folderId")
	if !ok {
		return
	}

	if err := service.SoftDeleteFolder(folderID, uid); err != nil {
		WriteServiceError(c, err, "删除失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文件夹删除成功"})
}

// ListFolders 列出当前用户的全部文件夹
func ListFolders(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	folders, err := service.ListFolders(uid)
	if err != nil {
		WriteServiceError(c, err, "获取文件夹列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders})
}
