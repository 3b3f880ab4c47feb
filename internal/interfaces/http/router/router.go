package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/infrastructure/logger"
	"github.com/portal/backend/internal/interfaces/http/handler"
	"github.com/portal/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers mounted by the router
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Tenant  *handler.TenantHandler
	System  *handler.SystemHandler
}

// Config carries everything the HTTP surface needs
type Config struct {
	Logger   *zap.Logger
	Verifier middleware.SessionVerifier
	Handlers Handlers

	// CookieName is the session cookie the authenticator reads
	CookieName string

	// CORS overrides the default cross-origin policy when set
	CORS *middleware.CORSConfig

	// BodyLimitBytes caps request body size; zero disables the limit
	BodyLimitBytes int64

	// LoginRateLimit throttles /auth/login attempts per client IP;
	// zero disables throttling
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// publicPaths never require a session. Logout is public so stale
// browsers can always clear their cookie.
var publicPaths = []string{
	"/health",
	"/ping",
	"/auth/login",
	"/auth/logout",
}

// Setup builds the gin engine with the full middleware chain and all
// routes mounted at the root, matching the paths the SSO frontends call
func Setup(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	corsHandler := middleware.CORS()
	if cfg.CORS != nil {
		corsHandler = middleware.CORSWithConfig(*cfg.CORS)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		corsHandler,
		middleware.Secure(),
	)
	if cfg.BodyLimitBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.BodyLimitBytes))
	}

	engine.Use(middleware.SessionAuthMiddlewareWithConfig(middleware.AuthMiddlewareConfig{
		Verifier:   cfg.Verifier,
		CookieName: cfg.CookieName,
		SkipPaths:  publicPaths,
		Logger:     cfg.Logger,
	}))

	registerRoutes(engine, cfg)
	return engine
}

func registerRoutes(engine *gin.Engine, cfg Config) {
	h := cfg.Handlers

	engine.GET("/health", h.System.Health)
	engine.GET("/ping", h.System.Ping)

	auth := engine.Group("/auth")
	{
		login := []gin.HandlerFunc{h.Auth.Login}
		if cfg.LoginRateLimit > 0 {
			limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
			login = append([]gin.HandlerFunc{middleware.RateLimit(limiter)}, login...)
		}
		auth.POST("/login", login...)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/logout", h.Auth.LogoutRedirect)
		auth.GET("/me", h.Auth.Me)
	}

	products := engine.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", middleware.RequireSuperAdmin(), h.Product.Create)
	}

	tenants := engine.Group("/tenants")
	{
		tenants.GET("", h.Tenant.List)
		tenants.POST("", middleware.RequireSuperAdmin(), h.Tenant.Create)
		tenants.GET("/check-slug", h.Tenant.CheckSlug)
		tenants.GET("/slug/:slug", h.Tenant.GetBySlug)
		tenants.GET("/:id", h.Tenant.GetByID)
		tenants.PUT("/:id/status", middleware.RequireSuperAdmin(), h.Tenant.SetStatus)
		tenants.GET("/:id/stats", h.Tenant.GetStats)
		tenants.GET("/:id/products", h.Tenant.GetProducts)
		tenants.PUT("/:id/products/:productId", middleware.RequireSuperAdmin(), h.Tenant.SetProduct)
	}
}
