package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"

	"github.com/gin-gonic/gin"
)

func bodyLimitEngine() *gin.Engine {
	r := gin.New()
	r.Use(BodyLimitMiddleware())
	handler := func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "请求体过大"})
			return
		}
		c.String(http.StatusOK, "ok")
	}
	r.POST("/echo", handler)
	r.POST("/file/upload", handler)
	return r
}

// 测试内容：默认 16KB 内的请求体放行，超限读取失败
func TestBodyLimit(t *testing.T) {
	setupMiddlewareTest(t)
	r := bodyLimitEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(make([]byte, 1024)))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for small body, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(make([]byte, 17*1024)))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversized body, got %d", w.Code)
	}
}

// 测试内容：上传路由跳过通用请求体限制
func TestBodyLimit_SkipsUploadPath(t *testing.T) {
	setupMiddlewareTest(t)
	r := bodyLimitEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/file/upload", bytes.NewReader(make([]byte, 17*1024)))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected upload path to bypass limit, got %d", w.Code)
	}
}

// 测试内容：上传限制按 Content-Length 预检，超出上限直接 413
func TestUploadBodyLimit(t *testing.T) {
	setupMiddlewareTest(t)

	if err := db.DB.Save(&model.Setting{Key: consts.ConfigMaxUploadSize, Value: "1"}).Error; err != nil {
		t.Fatalf("save setting: %v", err)
	}
	service.ClearCache()

	r := gin.New()
	r.POST("/file/upload", UploadBodyLimitMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/file/upload", bytes.NewReader([]byte("tiny")))
	req.ContentLength = 2 << 20
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for declared oversize, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/file/upload", bytes.NewReader([]byte("tiny")))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for small upload, got %d", w.Code)
	}
}
