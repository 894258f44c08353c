package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/config"
	"go.uber.org/zap"
)

func newMiddlewareEngine(mw ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(zap.NewNop()))
	engine.Use(mw...)
	engine.GET("/ping", func(c *gin.Context) { ok(c, nil, "pong") })
	return engine
}

func TestRateLimitRejectsBurst(t *testing.T) {
	engine := newMiddlewareEngine(RateLimit(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1}))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("Expected 200 then 429, got %v", codes)
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := newMiddlewareEngine(CORS(&config.CORSConfig{
		AllowOrigins: []string{"https://shop.example"},
		AllowMethods: []string{"GET", "POST"},
		MaxAge:       600,
	}))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Errorf("Unexpected allow origin %q", got)
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("Unexpected max age %q", got)
	}
}

func TestRecoveryTurnsPanicIntoEnvelope(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(zap.NewNop()), Recovery())
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
}
