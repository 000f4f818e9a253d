package handler

import (
	"net/http"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser 获取当前用户信息
func GetCurrentUser(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := service.GetUserByID(uid)
	if err != nil {
		WriteServiceError(c, err, "获取用户信息失败")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateAccountDetails 部分更新用户资料
func UpdateAccountDetails(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	user, err := service.UpdateAccountDetails(uid, req.Name, req.Email)
	if err != nil {
		WriteServiceError(c, err, "更新失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "资料更新成功",
		"user":    user,
	})
}

// ChangePassword 修改自己的密码
func ChangePassword(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := service.UpdatePasswordByOldPassword(uid, req.OldPassword, req.NewPassword); err != nil {
		WriteServiceError(c, err, "更新失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "密码修改成功"})
}

// GetStorage 获取配额快照
func GetStorage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	info, err := service.GetUserStorage(uid)
	if err != nil {
		WriteServiceError(c, err, "获取存储信息失败")
		return
	}

	c.JSON(http.StatusOK, info)
}

// SearchUser 按邮箱查找用户（用于选择分享对象）
func SearchUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请提供要查找的邮箱"})
		return
	}

	user, err := service.SearchUserByEmail(email)
	if err != nil {
		WriteServiceError(c, err, "查询用户失败")
		return
	}

	// 只返回可公开的身份信息
	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}
