package cache

import (
	"context"

	"github.com/portal/backend/internal/domain/identity"
)

// SessionCache is a read-through cache in front of the session store.
// It holds live sessions keyed by token so request verification does
// not hit the database on every call. Revoking a session must remove
// it from the cache so revocation takes effect immediately.
type SessionCache interface {
	// Get returns the cached session for a token, or (nil, nil) on a
	// cache miss
	Get(ctx context.Context, token string) (*identity.Session, error)

	// Set caches a session until its expiry time
	Set(ctx context.Context, session *identity.Session) error

	// Delete evicts a session by token. Evicting an unknown token is
	// not an error.
	Delete(ctx context.Context, token string) error

	// Close releases resources held by the cache
	Close() error
}
