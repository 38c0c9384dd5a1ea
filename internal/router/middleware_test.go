package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/petits-moulins/api/internal/constants"
	"github.com/petits-moulins/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const middlewareTestSecret = "middleware-test-secret-key-0123456789abc"

func signParentToken(t *testing.T, secret string, claims service.ParentJWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return signed
}

func parentTestClaims(expiresAt time.Time) service.ParentJWTClaims {
	return service.ParentJWTClaims{
		ParentID: 42,
		Email:    "parent@example.com",
		Role:     constants.RoleParent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
}

func setupGuardedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/profile", ParentJWTAuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"parent_id":    c.GetUint("parent_id"),
			"parent_email": c.GetString("parent_email"),
		})
	})
	return r
}

func TestParentJWTAuthMiddlewareValidToken(t *testing.T) {
	r := setupGuardedRouter(middlewareTestSecret)
	token := signParentToken(t, middlewareTestSecret, parentTestClaims(time.Now().Add(time.Hour)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["parent_email"] != "parent@example.com" {
		t.Fatalf("unexpected parent_email: %v", resp["parent_email"])
	}
}

func TestParentJWTAuthMiddlewareMissingHeader(t *testing.T) {
	r := setupGuardedRouter(middlewareTestSecret)

	for _, header := range []string{"", "Token abc", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status want 401 got %d", header, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Authentification requise") {
			t.Fatalf("header %q: unexpected body %s", header, w.Body.String())
		}
	}
}

func TestParentJWTAuthMiddlewareExpiredToken(t *testing.T) {
	r := setupGuardedRouter(middlewareTestSecret)
	token := signParentToken(t, middlewareTestSecret, parentTestClaims(time.Now().Add(-time.Minute)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Jeton invalide ou expiré") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestParentJWTAuthMiddlewareForeignSignature(t *testing.T) {
	r := setupGuardedRouter(middlewareTestSecret)
	token := signParentToken(t, "another-secret-key-for-guard-tests-zzz99", parentTestClaims(time.Now().Add(time.Hour)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
}

func TestParentJWTAuthMiddlewareWrongRole(t *testing.T) {
	r := setupGuardedRouter(middlewareTestSecret)
	claims := parentTestClaims(time.Now().Add(time.Hour))
	claims.Role = "staff"
	token := signParentToken(t, middlewareTestSecret, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
}

func TestParentJWTAuthMiddlewareMissingSecret(t *testing.T) {
	r := setupGuardedRouter("")
	token := signParentToken(t, middlewareTestSecret, parentTestClaims(time.Now().Add(time.Hour)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
}

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}
