package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	userID := uuid.New()

	t.Run("issues a valid session with default lifetime", func(t *testing.T) {
		session, err := NewSession(userID, 0)

		require.NoError(t, err)
		assert.Equal(t, userID, session.UserID)
		assert.Len(t, session.Token, sessionTokenBytes*2) // hex encoded
		assert.Nil(t, session.RevokedAt)
		assert.True(t, session.IsValid(time.Now()))
		assert.WithinDuration(t, time.Now().Add(DefaultSessionTTL), session.ExpiresAt, time.Minute)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		a, err := NewSession(userID, time.Hour)
		require.NoError(t, err)
		b, err := NewSession(userID, time.Hour)
		require.NoError(t, err)
		assert.NotEqual(t, a.Token, b.Token)
	})

	t.Run("fails without user", func(t *testing.T) {
		_, err := NewSession(uuid.Nil, time.Hour)
		assert.Error(t, err)
	})
}

func TestSessionValidity(t *testing.T) {
	session, err := NewSession(uuid.New(), time.Hour)
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, session.IsValid(now))
	assert.False(t, session.IsExpired(now))

	t.Run("expired session is invalid", func(t *testing.T) {
		later := session.ExpiresAt.Add(time.Second)
		assert.False(t, session.IsValid(later))
		assert.True(t, session.IsExpired(later))
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		assert.False(t, session.IsValid(session.ExpiresAt))
	})
}

func TestSessionRevoke(t *testing.T) {
	session, err := NewSession(uuid.New(), time.Hour)
	require.NoError(t, err)

	session.Revoke()
	require.NotNil(t, session.RevokedAt)
	revokedAt := *session.RevokedAt
	assert.False(t, session.IsValid(time.Now()))

	// Idempotent: a second revoke keeps the original timestamp
	session.Revoke()
	assert.Equal(t, revokedAt, *session.RevokedAt)
}
