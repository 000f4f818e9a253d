package handler

import (
	"net/http"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"

	"github.com/gin-gonic/gin"
)

// Share 把资源分享给另一个用户
func Share(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		ResourceID       uint   `json:"resource_id" binding:"required"`
		ResourceType     string `json:"resource_type" binding:"required"`
		SharedWithUserID uint   `json:"shared_with_user_id" binding:"required"`
		AccessType       string `json:"access_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "所有字段均为必填项"})
		return
	}

	shared, err := service.ShareResource(uid, req.ResourceID, req.ResourceType, req.SharedWithUserID, req.AccessType)
	if err != nil {
		WriteServiceError(c, err, "分享失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "分享成功",
		"shared":  shared,
	})
}

// UpdateAccess 修改某个被授权用户的权限
func UpdateAccess(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	sharedID, ok := parseIDParam(c, "sharedId")
	if !ok {
		return
	}

	var req struct {
		SharedWithUserID uint   `json:"shared_with_user_id" binding:"required"`
		NewAccessType    string `json:"new_access_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "所有字段均为必填项"})
		return
	}

	shared, err := service.UpdateAccess(sharedID, req.SharedWithUserID, req.NewAccessType, uid)
	if err != nil {
		WriteServiceError(c, err, "更新权限失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "权限更新成功",
		"shared":  shared,
	})
}

// RemoveAccess 撤销某个被授权用户的权限
func RemoveAccess(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	sharedID, ok := parseIDParam(c, "sharedId")
	if !ok {
		return
	}

	var req struct {
		SharedWithUserID uint `json:"shared_with_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请指定要移除的用户"})
		return
	}

	if err := service.RemoveAccess(sharedID, req.SharedWithUserID, uid); err != nil {
		WriteServiceError(c, err, "移除权限失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "权限移除成功"})
}

// ListGrantees 列出某资源的全部被授权用户
func ListGrantees(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	resourceID, ok := parseIDParam(c, "resourceId")
	if !ok {
		return
	}

	grantees, err := service.ListGrantees(resourceID, c.Query("resource_type"))
	if err != nil {
		WriteServiceError(c, err, "获取分享列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"grantees": grantees})
}

// ListSharedWithMe 列出分享给当前用户的全部资源
func ListSharedWithMe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	resources, err := service.ListSharedWithUser(uid)
	if err != nil {
		WriteServiceError(c, err, "获取分享资源失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}
