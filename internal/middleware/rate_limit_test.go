package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func rateLimitEngine() *gin.Engine {
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(consts.ConfigRateLimitAuthRPS, consts.ConfigRateLimitAuthBurst), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func fireLogin(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

// 测试内容：突发额度内放行，超出后返回 429
func TestRateLimit_BurstExhaustion(t *testing.T) {
	setupMiddlewareTest(t)
	r := rateLimitEngine()

	// 默认突发额度为 5
	for i := 0; i < 5; i++ {
		if code := fireLogin(r); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := fireLogin(r); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}
}

// 测试内容：限流总开关关闭时全部放行
func TestRateLimit_Disabled(t *testing.T) {
	setupMiddlewareTest(t)

	if err := db.DB.Save(&model.Setting{Key: consts.ConfigRateLimitEnabled, Value: "false"}).Error; err != nil {
		t.Fatalf("save setting: %v", err)
	}
	service.ClearCache()

	r := rateLimitEngine()
	for i := 0; i < 20; i++ {
		if code := fireLogin(r); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 with limiter disabled, got %d", i+1, code)
		}
	}
}

// 测试内容：同一 IP 复用同一个限流器，不同 IP 互不影响
func TestIPRateLimiter_PerIP(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	a1 := limiter.getLimiter("10.0.0.1")
	a2 := limiter.getLimiter("10.0.0.1")
	if a1 != a2 {
		t.Fatal("expected same limiter for same IP")
	}

	b := limiter.getLimiter("10.0.0.2")
	if a1 == b {
		t.Fatal("expected distinct limiters per IP")
	}

	if !a1.Allow() {
		t.Fatal("expected first request allowed")
	}
	if a1.Allow() {
		t.Fatal("expected second request denied by burst 1")
	}
	if !b.Allow() {
		t.Fatal("expected other IP unaffected")
	}
}
