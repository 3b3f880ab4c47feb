package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/portal/backend/internal/application/catalog"
	identityapp "github.com/portal/backend/internal/application/identity"
	"github.com/portal/backend/internal/infrastructure/cache"
	"github.com/portal/backend/internal/infrastructure/config"
	"github.com/portal/backend/internal/infrastructure/logger"
	"github.com/portal/backend/internal/infrastructure/persistence"
	"github.com/portal/backend/internal/infrastructure/scheduler"
	"github.com/portal/backend/internal/interfaces/http/handler"
	"github.com/portal/backend/internal/interfaces/http/middleware"
	"github.com/portal/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Portal Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	tenantProductRepo := persistence.NewGormTenantProductRepository(db.DB)

	// Initialize session cache (Redis with optional in-memory fallback)
	cacheFactory := cache.NewSessionCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.Session.RequireRedis),
	)
	sessionCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize session cache", zap.Error(err))
	}

	// Initialize application services
	authService := identityapp.NewAuthService(
		userRepo,
		tenantRepo,
		sessionRepo,
		sessionCache,
		identityapp.AuthServiceConfig{SessionTTL: cfg.Session.TTL},
		log,
	)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, planRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	entitlementService := catalogapp.NewEntitlementService(
		tenantRepo,
		planRepo,
		productRepo,
		tenantProductRepo,
		log,
	)

	// Start the expired-session janitor
	janitor := scheduler.NewSessionJanitor(scheduler.SessionJanitorConfig{
		Interval: cfg.Session.CleanupInterval,
	}, sessionRepo, log)
	if err := janitor.Start(context.Background()); err != nil {
		log.Fatal("Failed to start session janitor", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := janitor.Stop(stopCtx); err != nil {
			log.Warn("Session janitor did not stop cleanly", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, handler.CookieSettings{
		Name:     cfg.Cookie.Name,
		Path:     cfg.Cookie.Path,
		Domain:   cfg.Cookie.Domain,
		Secure:   cfg.Cookie.Secure,
		SameSite: sameSiteFromString(cfg.Cookie.SameSite),
	}, cfg.SSO.LoginURLs)
	productHandler := handler.NewProductHandler(productService)
	tenantHandler := handler.NewTenantHandler(tenantService, entitlementService)
	systemHandler := handler.NewSystemHandler(db.Ping)

	// Build the HTTP surface
	engine := router.Setup(router.Config{
		Logger:   log,
		Verifier: authService,
		Handlers: router.Handlers{
			Auth:    authHandler,
			Product: productHandler,
			Tenant:  tenantHandler,
			System:  systemHandler,
		},
		CookieName: cfg.Cookie.Name,
		CORS: &middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		BodyLimitBytes:  cfg.HTTP.MaxBodySize,
		LoginRateLimit:  cfg.HTTP.LoginRateLimit,
		LoginRateWindow: cfg.HTTP.LoginRateWindow,
	})

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// sameSiteFromString maps the config value to the net/http constant.
// Config validation guarantees the value is one of strict, lax, none.
func sameSiteFromString(v string) http.SameSite {
	switch v {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
