package handler

import (
	"net/http"
	"strconv"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传文件（multipart），受配额约束
func UploadFile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "请上传文件"})
		return
	}

	var folderID *uint
	if raw := c.PostForm("folder_id"); raw != "" {
		id, parseErr := strconv.ParseUint(raw, 10, 64)
		if parseErr != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
			return
		}
		fid := uint(id)
		folderID = &fid
	}

	newFile, err := service.UploadFile(c.Request.Context(), uid, file, folderID)
	if err != nil {
		WriteServiceError(c, err, "文件上传失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "文件上传成功",
		"file":    newFile,
	})
}

// ListFiles 列出当前用户的全部文件
func ListFiles(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	files, err := service.ListFiles(uid)
	if err != nil {
		WriteServiceError(c, err, "获取文件列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

// DeleteFile 删除文件并释放配额
func DeleteFile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	fileID, ok := parseIDParam(c, "fileId")
	if !ok {
		return
	}

	if err := service.DeleteFile(c.Request.Context(), fileID, uid); err != nil {
		WriteServiceError(c, err, "删除失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文件删除成功"})
}

// MoveFile 移动文件到指定文件夹（folder_id 为 null 表示根目录）
func MoveFile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	fileID, ok := parseIDParam(c, "fileId")
	if !ok {
		return
	}

	var req struct {
		FolderID *uint `json:"folder_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	file, err := service.MoveFile(fileID, uid, req.FolderID)
	if err != nil {
		WriteServiceError(c, err, "移动失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "文件移动成功",
		"file":    file,
	})
}
