package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupUserTestDB creates an in-memory SQLite database for testing
func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			tenant_id TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			last_login_at DATETIME,
			last_login_ip TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	// Email is unique within a tenant and among platform accounts
	err = db.Exec(`CREATE UNIQUE INDEX idx_users_tenant_email ON users (tenant_id, email) WHERE tenant_id IS NOT NULL`).Error
	require.NoError(t, err)
	err = db.Exec(`CREATE UNIQUE INDEX idx_users_platform_email ON users (email) WHERE tenant_id IS NULL`).Error
	require.NoError(t, err)

	return db
}

func newTestUser(t *testing.T, email string, tenantID *uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "Password123", "Test User", identity.RoleMember, tenantID)
	require.NoError(t, err)
	return user
}

func TestGormUserRepository_CreateAndFindByID(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	user := newTestUser(t, "alice@example.com", &tenantID)

	require.NoError(t, repo.Create(ctx, user))

	retrieved, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, "alice@example.com", retrieved.Email)
	require.NotNil(t, retrieved.TenantID)
	assert.Equal(t, tenantID, *retrieved.TenantID)
	assert.True(t, retrieved.IsActive)
}

func TestGormUserRepository_FindByID_NotFound(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_FindByEmailAndTenant(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	tenantA := uuid.New()
	tenantB := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestUser(t, "bob@example.com", &tenantA)))
	require.NoError(t, repo.Create(ctx, newTestUser(t, "bob@example.com", &tenantB)))

	found, err := repo.FindByEmailAndTenant(ctx, "bob@example.com", tenantA)
	require.NoError(t, err)
	require.NotNil(t, found.TenantID)
	assert.Equal(t, tenantA, *found.TenantID)

	// Lookup is case-insensitive
	found, err = repo.FindByEmailAndTenant(ctx, "BOB@Example.COM", tenantB)
	require.NoError(t, err)
	require.NotNil(t, found.TenantID)
	assert.Equal(t, tenantB, *found.TenantID)

	_, err = repo.FindByEmailAndTenant(ctx, "bob@example.com", uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_FindPlatformUserByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestUser(t, "carol@example.com", &tenantID)))

	// Tenant-scoped account must not resolve as a platform account
	_, err := repo.FindPlatformUserByEmail(ctx, "carol@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	platform := newTestUser(t, "carol@example.com", nil)
	require.NoError(t, repo.Create(ctx, platform))

	found, err := repo.FindPlatformUserByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, platform.ID, found.ID)
	assert.Nil(t, found.TenantID)
}

func TestGormUserRepository_Create_DuplicateEmailInTenant(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestUser(t, "dup@example.com", &tenantID)))

	err := repo.Create(ctx, newTestUser(t, "dup@example.com", &tenantID))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormUserRepository_Update(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	user := newTestUser(t, "dave@example.com", &tenantID)
	require.NoError(t, repo.Create(ctx, user))

	user.RecordLoginSuccess("203.0.113.7")
	require.NoError(t, repo.Update(ctx, user))

	retrieved, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.LastLoginAt)
	assert.Equal(t, "203.0.113.7", retrieved.LastLoginIP)
}

func TestGormUserRepository_FindAll(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	otherTenant := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestUser(t, "one@example.com", &tenantID)))
	require.NoError(t, repo.Create(ctx, newTestUser(t, "two@example.com", &tenantID)))
	require.NoError(t, repo.Create(ctx, newTestUser(t, "three@example.com", &otherTenant)))

	filter := identity.NewUserFilter()
	filter.TenantID = &tenantID

	users, total, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	filter.Keyword = "one"
	users, total, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "one@example.com", users[0].Email)
}

func TestGormUserRepository_CountActiveSince(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	recent := newTestUser(t, "recent@example.com", &tenantID)
	recent.RecordLoginSuccess("198.51.100.1")
	require.NoError(t, repo.Create(ctx, recent))

	stale := newTestUser(t, "stale@example.com", &tenantID)
	old := time.Now().Add(-60 * 24 * time.Hour)
	stale.LastLoginAt = &old
	require.NoError(t, repo.Create(ctx, stale))

	never := newTestUser(t, "never@example.com", &tenantID)
	require.NoError(t, repo.Create(ctx, never))

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	count, err := repo.CountActiveSince(ctx, tenantID, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	total, err := repo.CountByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
