package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMemoryRateLimiterSlidingWindow(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	window := time.Minute

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", window, 5)
		if !allowed {
			t.Fatalf("request %d within budget should pass", i+1)
		}
	}

	allowed, wait := limiter.Allow("1.2.3.4", window, 5)
	if allowed {
		t.Fatalf("sixth request should be rejected")
	}
	if wait < 1 {
		t.Fatalf("expected positive wait hint, got %d", wait)
	}

	// 其他 key 不受影响
	if allowed, _ := limiter.Allow("5.6.7.8", window, 5); !allowed {
		t.Fatalf("different key should not share the budget")
	}
}

func TestMemoryRateLimiterExpiredHitsPruned(t *testing.T) {
	limiter := NewMemoryRateLimiter()

	old := time.Now().Add(-2 * time.Minute)
	limiter.mu.Lock()
	limiter.hits["stale"] = []time.Time{old, old, old}
	limiter.mu.Unlock()

	if allowed, _ := limiter.Allow("stale", time.Minute, 3); !allowed {
		t.Fatalf("hits outside the window should be pruned")
	}
}

func TestMemoryRateLimiterReset(t *testing.T) {
	limiter := NewMemoryRateLimiter()

	for i := 0; i < 3; i++ {
		limiter.Allow("reset-key", time.Minute, 3)
	}
	if allowed, _ := limiter.Allow("reset-key", time.Minute, 3); allowed {
		t.Fatalf("budget should be exhausted before reset")
	}

	limiter.Reset("reset-key")
	if allowed, _ := limiter.Allow("reset-key", time.Minute, 3); !allowed {
		t.Fatalf("reset should clear the counter")
	}
}

func TestRateLimitMiddlewareRejectsWithRetryMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewMemoryRateLimiter()
	rule := RateLimitRule{
		Prefix:        "send_verification",
		WindowSeconds: 900,
		MaxRequests:   2,
		Message:       "Trop de tentatives. Réessayez dans 15 minutes.",
	}

	r := gin.New()
	r.POST("/auth", RateLimitMiddleware(limiter, rule, KeyByIP), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth", nil)
		req.RemoteAddr = "1.2.3.4:1111"
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d want 200 got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth", nil)
	req.RemoteAddr = "1.2.3.4:1111"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status want 429 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Trop de tentatives") {
		t.Fatalf("expected retry message, got %s", w.Body.String())
	}
}

func TestRateLimitMiddlewareWithoutLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("nil limiter should not block, got %d", w.Code)
		}
	}
}

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"email":" Parent@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "parent@example.com|1.2.3.4" {
		t.Fatalf("key want parent@example.com|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Parent@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}
