package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID 从上下文取出认证中间件写入的用户 ID
func currentUserID(c *gin.Context) (uint, bool) {
	userId, exists := c.Get("id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return 0, false
	}

	uid, ok := userId.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return 0, false
	}
	return uid, true
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return 0, false
	}
	return uint(id), true
}
