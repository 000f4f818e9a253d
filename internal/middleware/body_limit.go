package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware 限制请求体大小
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 跳过文件上传路由
		// 这里简单通过路径判断
		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/upload") {
			c.Next()
			return
		}

		maxSizeKB := service.GetInt(consts.ConfigMaxRequestBodyKB)
		if maxSizeKB <= 0 {
			// 如果未设置或为0，默认 16KB
			maxSizeKB = 16
		}

		// 限制大小 (KB -> Bytes)
		maxBytes := int64(maxSizeKB) * 1024

		// 使用 MaxBytesReader 限制读取的字节数
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制上传接口的请求体大小
func UploadBodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := service.GetInt(consts.ConfigMaxUploadSize)
		if maxSizeMB <= 0 {
			maxSizeMB = 100
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("文件大小不能超过 %dMB", maxSizeMB)})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
