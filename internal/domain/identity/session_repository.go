package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	// Create persists a newly issued session
	Create(ctx context.Context, session *Session) error

	// FindByToken finds a session by its opaque token value
	FindByToken(ctx context.Context, token string) (*Session, error)

	// Revoke marks the session with the given token as revoked.
	// Unknown or already revoked tokens are not an error.
	Revoke(ctx context.Context, token string) error

	// RevokeAllForUser revokes every live session of a user
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredBefore removes sessions that expired before the cutoff
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
