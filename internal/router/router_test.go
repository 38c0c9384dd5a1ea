package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petits-moulins/api/internal/config"
	"github.com/petits-moulins/api/internal/provider"

	"github.com/gin-gonic/gin"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = "router-test-secret-key-0123456789abcdef"
	cfg.Security.VerifyRateLimit.WindowSeconds = 900
	cfg.Security.VerifyRateLimit.MaxRequests = 5

	return SetupRouter(cfg, &provider.Container{Config: cfg})
}

func TestFormRoutesRequireSession(t *testing.T) {
	r := setupRouterTest(t)

	payload := `{"parent_email":"victime@example.com","form_type":"sortie","digital_signature":"forged","children":["Émile"]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/forms/submit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("submit without token: status want 401 got %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/forms/FORM-1-abc", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("get form without token: status want 401 got %d", w.Code)
	}
}

func TestParentRoutesMountedUnderParentPrefix(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/parent/my-forms", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("my-forms without token: status want 401 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/parent/profile", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("profile without token: status want 401 got %d", w.Code)
	}
}
