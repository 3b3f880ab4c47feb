package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/portal/backend/internal/infrastructure/config"
)

// SessionCacheFactory creates session caches based on configuration
type SessionCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SessionCacheFactoryOption is a functional option for configuring the factory
type SessionCacheFactoryOption func(*SessionCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SessionCacheFactoryOption {
	return func(f *SessionCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) SessionCacheFactoryOption {
	return func(f *SessionCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSessionCacheFactory creates a new factory
func NewSessionCacheFactory(cfg config.RedisConfig, opts ...SessionCacheFactoryOption) *SessionCacheFactory {
	f := &SessionCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based session cache
func (f *SessionCacheFactory) CreateRedisCache() (SessionCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	c, err := NewRedisSessionCache(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis session cache: %w", err)
	}

	return c, nil
}

// CreateInMemoryCache creates an in-memory session cache
// This is suitable for single-instance deployments and testing
// WARNING: In-memory caches do not share state across process instances,
// so revocations propagate only through the database in distributed deployments
func (f *SessionCacheFactory) CreateInMemoryCache() SessionCache {
	return NewInMemorySessionCache()
}

// CreateCache creates a session cache based on whether Redis is available
// It tries to create a Redis cache first, and falls back to in-memory if Redis
// is not available and AllowInMemoryFallback is true
func (f *SessionCacheFactory) CreateCache() (SessionCache, error) {
	store, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis session cache")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for session cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory session cache. "+
		"Sessions will not be shared across process instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
