package handler

import (
	"github.com/Deepanshu902/Google-Drive-Clone/internal/common/httpx"

	"github.com/gin-gonic/gin"
)

// WriteServiceError 统一的服务层错误出口
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	httpx.WriteServiceError(c, err, fallbackMessage)
}
