package cache

import (
	"context"
	"sync"
	"time"

	"github.com/portal/backend/internal/domain/identity"
)

// InMemorySessionCache implements SessionCache using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemorySessionCache struct {
	mu        sync.RWMutex
	sessions  map[string]*identity.Session
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySessionCache creates a new in-memory session cache
// It starts a background goroutine to clean up expired sessions
func NewInMemorySessionCache() *InMemorySessionCache {
	c := &InMemorySessionCache{
		sessions: make(map[string]*identity.Session),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached session for a token, or (nil, nil) on a miss
func (c *InMemorySessionCache) Get(ctx context.Context, token string) (*identity.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	session, exists := c.sessions[token]
	if !exists {
		return nil, nil
	}
	if session.IsExpired(time.Now()) {
		return nil, nil // Expired, treat as a miss
	}
	return session, nil
}

// Set caches a session until its expiry time
func (c *InMemorySessionCache) Set(ctx context.Context, session *identity.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions[session.Token] = session
	return nil
}

// Delete evicts a session by token
func (c *InMemorySessionCache) Delete(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.sessions, token)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (c *InMemorySessionCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired sessions
func (c *InMemorySessionCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired sessions from the cache
func (c *InMemorySessionCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for token, session := range c.sessions {
		if session.IsExpired(now) {
			delete(c.sessions, token)
		}
	}
}

// Size returns the number of cached sessions (for testing/monitoring)
func (c *InMemorySessionCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// Ensure InMemorySessionCache implements SessionCache
var _ SessionCache = (*InMemorySessionCache)(nil)
