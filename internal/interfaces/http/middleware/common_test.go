package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/portal/backend/internal/infrastructure/logger"
)

func newCORSRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func portalCORSConfig() CORSConfig {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://admin.portal.example"}
	return cfg
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("allowed origin gets credentialed headers", func(t *testing.T) {
		router := newCORSRouter(portalCORSConfig())

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Origin", "https://admin.portal.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://admin.portal.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("unlisted origin gets no CORS headers", func(t *testing.T) {
		router := newCORSRouter(portalCORSConfig())

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// The request itself still runs; the browser enforces the block
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty allow list rejects every origin", func(t *testing.T) {
		router := newCORSRouter(DefaultCORSConfig())

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Origin", "https://admin.portal.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answered without reaching routes", func(t *testing.T) {
		router := newCORSRouter(portalCORSConfig())

		req := httptest.NewRequest(http.MethodOptions, "/does-not-exist", nil)
		req.Header.Set("Origin", "https://admin.portal.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://admin.portal.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	})

	t.Run("wildcard origin never pairs with credentials", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"*"}
		router := newCORSRouter(cfg)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Origin", "https://anything.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("max age advertised in seconds", func(t *testing.T) {
		cfg := portalCORSConfig()
		cfg.MaxAge = 2 * time.Hour
		router := newCORSRouter(cfg)

		req := httptest.NewRequest(http.MethodOptions, "/products", nil)
		req.Header.Set("Origin", "https://admin.portal.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "7200", w.Header().Get("Access-Control-Max-Age"))
	})
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	// Cross-origin access stays shut until origins are configured
	assert.Empty(t, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Contains(t, cfg.AllowHeaders, "Authorization")
	assert.Contains(t, cfg.ExposeHeaders, "X-Request-ID")
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})

	t.Run("generates an id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "sso-frontend-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "sso-frontend-42", w.Header().Get("X-Request-ID"))
		assert.Contains(t, w.Body.String(), "sso-frontend-42")
	})

	t.Run("id reaches the request context", func(t *testing.T) {
		ctxRouter := gin.New()
		ctxRouter.Use(RequestID())
		ctxRouter.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, logger.GetRequestID(c.Request.Context()))
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "sso-frontend-42")
		w := httptest.NewRecorder()
		ctxRouter.ServeHTTP(w, req)

		assert.Equal(t, "sso-frontend-42", w.Body.String())
	})

	t.Run("ids are unique across requests", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			id := w.Header().Get("X-Request-ID")
			assert.False(t, seen[id], "request id repeated: %s", id)
			seen[id] = true
		}
	})
}

func TestSecure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Secure())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
}
