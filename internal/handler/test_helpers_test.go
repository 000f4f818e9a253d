package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/config"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/testutils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memObjectStore 内存对象存储，处理器测试无需磁盘
type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return m.PublicURL(key), nil
}

func (m *memObjectStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memObjectStore) PublicURL(key string) string {
	return "/files/" + key
}

func setupHandlerTest(t *testing.T) {
	t.Helper()
	config.InitConfig("")

	testutils.SetupDB(t)
	service.InitializeSettings()
	service.ClearCache()
	t.Cleanup(service.ClearCache)

	service.SetObjectStore(&memObjectStore{objects: make(map[string][]byte)})
}

// fakeAuth 模拟认证中间件，直接把用户 ID 写入上下文
func fakeAuth(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("id", uid)
		c.Next()
	}
}

func registerUser(t *testing.T, name string, email string) *model.User {
	t.Helper()
	user, err := service.RegisterUser(name, email, "secret1")
	if err != nil {
		t.Fatalf("RegisterUser(%s): %v", email, err)
	}
	return user
}

func shrinkQuota(t *testing.T, uid uint, quota int64) {
	t.Helper()
	if err := db.DB.Model(&model.User{}).Where("id = ?", uid).
		UpdateColumn("total_storage", quota).Error; err != nil {
		t.Fatalf("shrink quota: %v", err)
	}
}

func performJSON(r *gin.Engine, method string, path string, payload interface{}) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func performJSONWithCookie(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return result
}

// performUpload 构造 multipart 上传请求
func performUpload(t *testing.T, r *gin.Engine, path string, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
