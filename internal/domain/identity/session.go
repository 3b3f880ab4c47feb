package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// DefaultSessionTTL is how long a session stays valid after login
const DefaultSessionTTL = 7 * 24 * time.Hour

// sessionTokenBytes is the entropy of a session token before hex encoding
const sessionTokenBytes = 32

// Session represents an opaque bearer credential bound to a user.
// The token is random; all state needed to reject it (expiry, revocation)
// lives on this record, so revocation takes effect immediately.
type Session struct {
	shared.BaseEntity
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// NewSession issues a new session for the user with the given lifetime
func NewSession(userID uuid.UUID, ttl time.Duration) (*Session, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate session token")
	}

	return &Session{
		BaseEntity: shared.NewBaseEntity(),
		Token:      token,
		UserID:     userID,
		ExpiresAt:  time.Now().Add(ttl),
	}, nil
}

// IsValid reports whether the session authenticates requests at the given time
func (s *Session) IsValid(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return now.Before(s.ExpiresAt)
}

// IsExpired reports whether the session has passed its expiry
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Revoke marks the session as revoked. Revoking an already revoked
// session is a no-op; a revoked token never authenticates again.
func (s *Session) Revoke() {
	if s.RevokedAt != nil {
		return
	}
	now := time.Now()
	s.RevokedAt = &now
	s.UpdatedAt = now
}

func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
