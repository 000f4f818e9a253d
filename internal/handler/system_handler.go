package handler

import (
	"net/http"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"

	"github.com/gin-gonic/gin"
)

// Healthz 存活探针
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": consts.ApplicationVersion,
	})
}
