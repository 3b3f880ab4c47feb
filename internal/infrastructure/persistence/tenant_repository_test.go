package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTenantTestDB creates an in-memory SQLite database for testing
func setupTenantTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE tenants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL,
			plan_id TEXT NOT NULL,
			notes TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func newTestTenant(t *testing.T, name, slug string) *identity.Tenant {
	t.Helper()
	tenant, err := identity.NewTenant(name, slug, uuid.New())
	require.NoError(t, err)
	return tenant
}

func TestGormTenantRepository_CreateAndFind(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant(t, "Acme Corp", "acme")
	require.NoError(t, repo.Create(ctx, tenant))

	byID, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", byID.Name)
	assert.Equal(t, identity.TenantStatusActive, byID.Status)

	bySlug, err := repo.FindBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, bySlug.ID)

	// Slug lookup normalizes case and whitespace
	bySlug, err = repo.FindBySlug(ctx, "  ACME ")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, bySlug.ID)
}

func TestGormTenantRepository_Create_DuplicateSlug(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTenant(t, "First", "shared-slug")))

	err := repo.Create(ctx, newTestTenant(t, "Second", "shared-slug"))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormTenantRepository_ExistsBySlug(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTenant(t, "Acme Corp", "acme")))

	exists, err := repo.ExistsBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(ctx, "unused")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormTenantRepository_Update(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant(t, "Acme Corp", "acme")
	require.NoError(t, repo.Create(ctx, tenant))

	require.NoError(t, tenant.SetStatus(identity.TenantStatusSuspended))
	require.NoError(t, repo.Update(ctx, tenant))

	retrieved, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.TenantStatusSuspended, retrieved.Status)
}

func TestGormTenantRepository_FindAll(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	acme := newTestTenant(t, "Acme Corp", "acme")
	globex := newTestTenant(t, "Globex", "globex")
	require.NoError(t, repo.Create(ctx, acme))
	require.NoError(t, repo.Create(ctx, globex))
	require.NoError(t, globex.SetStatus(identity.TenantStatusSuspended))
	require.NoError(t, repo.Update(ctx, globex))

	filter := shared.DefaultFilter()
	tenants, total, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, tenants, 2)

	filter.Search = "glo"
	tenants, total, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tenants, 1)
	assert.Equal(t, "Globex", tenants[0].Name)

	filter = shared.DefaultFilter()
	filter.Filters["status"] = string(identity.TenantStatusSuspended)
	tenants, total, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tenants, 1)
	assert.Equal(t, "globex", tenants[0].Slug)
}

func TestGormTenantRepository_FindAll_Pagination(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	for _, slug := range []string{"one", "two", "three", "four", "five"} {
		require.NoError(t, repo.Create(ctx, newTestTenant(t, "Tenant "+slug, slug)))
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 2
	filter.OrderBy = "slug"
	filter.OrderDir = "asc"

	tenants, total, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, tenants, 2)
	assert.Equal(t, "five", tenants[0].Slug)
	assert.Equal(t, "four", tenants[1].Slug)

	filter.Page = 3
	tenants, _, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "two", tenants[0].Slug)
}
