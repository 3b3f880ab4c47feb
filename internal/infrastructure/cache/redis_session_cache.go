package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/portal/backend/internal/domain/identity"
)

// RedisSessionCache implements SessionCache using Redis
// This is suitable for distributed deployments where multiple instances
// need to share session state
type RedisSessionCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// cachedSession is the JSON shape stored in Redis
type cachedSession struct {
	Token     string     `json:"token"`
	UserID    uuid.UUID  `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// NewRedisSessionCache creates a new Redis-based session cache
func NewRedisSessionCache(cfg RedisConfig) (*RedisSessionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSessionCache{
		client:    client,
		keyPrefix: "auth:session:",
	}, nil
}

// NewRedisSessionCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisSessionCacheWithClient(client *redis.Client, keyPrefix string) *RedisSessionCache {
	if keyPrefix == "" {
		keyPrefix = "auth:session:"
	}
	return &RedisSessionCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached session for a token, or (nil, nil) on a miss
func (c *RedisSessionCache) Get(ctx context.Context, token string) (*identity.Session, error) {
	key := c.keyPrefix + token

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session from cache: %w", err)
	}

	var cs cachedSession
	if err := json.Unmarshal(payload, &cs); err != nil {
		return nil, fmt.Errorf("failed to decode cached session: %w", err)
	}

	session := &identity.Session{
		Token:     cs.Token,
		UserID:    cs.UserID,
		ExpiresAt: cs.ExpiresAt,
		RevokedAt: cs.RevokedAt,
	}
	session.CreatedAt = cs.CreatedAt
	return session, nil
}

// Set caches a session with a TTL matching its remaining lifetime.
// Already-expired sessions are not cached.
func (c *RedisSessionCache) Set(ctx context.Context, session *identity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(cachedSession{
		Token:     session.Token,
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
		RevokedAt: session.RevokedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode session for cache: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+session.Token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	return nil
}

// Delete evicts a session by token
func (c *RedisSessionCache) Delete(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, c.keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to evict session from cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisSessionCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisSessionCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisSessionCache implements SessionCache
var _ SessionCache = (*RedisSessionCache)(nil)
