package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/utils"

	"github.com/gin-gonic/gin"
)

func authEngine() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint("id"), "email": c.GetString("email")})
	})
	r.GET("/checked", JWTAuth(), UserCheck(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint("id")})
	})
	return r
}

func accessTokenFor(t *testing.T, uid uint) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(uid, "user@example.com", model.RoleUser, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// 测试内容：无令牌、伪造令牌一律 401
func TestJWTAuth_Rejections(t *testing.T) {
	setupMiddlewareTest(t)
	r := authEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with non-bearer scheme, got %d", w.Code)
	}
}

// 测试内容：Bearer 头和 Cookie 两种携带方式都能通过认证
func TestJWTAuth_TokenSources(t *testing.T) {
	setupMiddlewareTest(t)
	r := authEngine()
	token := accessTokenFor(t, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie token, got %d: %s", w.Code, w.Body.String())
	}
}

// 测试内容：令牌对应的用户不存在时 UserCheck 拦截
func TestUserCheck_MissingUser(t *testing.T) {
	setupMiddlewareTest(t)
	r := authEngine()

	ClearUserExistCache(9999)
	token := accessTokenFor(t, 9999)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checked", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing user, got %d", w.Code)
	}
}

// 测试内容：存在的用户通过 UserCheck
func TestUserCheck_ExistingUser(t *testing.T) {
	setupMiddlewareTest(t)
	r := authEngine()
	user := createUserRow(t, "Alice", "alice@example.com")

	token := accessTokenFor(t, user.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checked", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

// 测试内容：存在性结果被缓存，清缓存后重新查库
func TestUserCheck_CacheInvalidation(t *testing.T) {
	setupMiddlewareTest(t)
	r := authEngine()
	user := createUserRow(t, "Alice", "alice@example.com")
	token := accessTokenFor(t, user.ID)

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/checked", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("expected 200 on first pass, got %d", code)
	}

	if err := db.DB.Delete(&model.User{}, user.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// 缓存未过期期间仍放行
	if code := do(); code != http.StatusOK {
		t.Fatalf("expected 200 from cache, got %d", code)
	}

	ClearUserExistCache(user.ID)
	if code := do(); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after cache clear, got %d", code)
	}
}

// 测试内容：认证中间件缺位时 UserCheck 自身兜底 401
func TestUserCheck_WithoutJWTAuth(t *testing.T) {
	setupMiddlewareTest(t)

	r := gin.New()
	r.GET("/broken", UserCheck(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

// 测试内容：上下文里的 id 与令牌声明一致
func TestJWTAuth_ContextValues(t *testing.T) {
	setupMiddlewareTest(t)
	r := authEngine()
	token := accessTokenFor(t, 42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	want := fmt.Sprintf(`"id":%d`, 42)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), want) {
		t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
	}
}
