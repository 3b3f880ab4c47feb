package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	planID := uuid.New()

	t.Run("creates tenant with valid fields", func(t *testing.T) {
		tenant, err := NewTenant("Acme Corp", "acme-corp", planID)

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", tenant.Name)
		assert.Equal(t, "acme-corp", tenant.Slug)
		assert.Equal(t, TenantStatusActive, tenant.Status)
		assert.Equal(t, planID, tenant.PlanID)

		events := tenant.GetDomainEvents()
		assert.Len(t, events, 1)
		_, ok := events[0].(*TenantCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes slug to lowercase", func(t *testing.T) {
		tenant, err := NewTenant("Acme Corp", "Acme-Corp", planID)

		require.NoError(t, err)
		assert.Equal(t, "acme-corp", tenant.Slug)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewTenant("", "acme", planID)
		assert.Error(t, err)
	})

	t.Run("fails with invalid slug characters", func(t *testing.T) {
		_, err := NewTenant("Acme", "acme corp!", planID)
		assert.Error(t, err)
	})

	t.Run("fails without plan", func(t *testing.T) {
		_, err := NewTenant("Acme", "acme", uuid.Nil)
		assert.Error(t, err)
	})
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"acme", "acme-corp", "a1", "tenant-42-west", "ACME"}
	for _, s := range valid {
		assert.NoError(t, ValidateSlug(s), s)
	}

	invalid := []string{"", "-acme", "acme-", "acme--corp", "acme corp", "a_b"}
	for _, s := range invalid {
		assert.Error(t, ValidateSlug(s), s)
	}
}

func TestTenantSetStatus(t *testing.T) {
	tenant, err := NewTenant("Acme Corp", "acme-corp", uuid.New())
	require.NoError(t, err)

	t.Run("suspends an active tenant", func(t *testing.T) {
		err := tenant.SetStatus(TenantStatusSuspended)
		require.NoError(t, err)
		assert.Equal(t, TenantStatusSuspended, tenant.Status)
		assert.False(t, tenant.IsActive())
	})

	t.Run("setting the same status fails", func(t *testing.T) {
		err := tenant.SetStatus(TenantStatusSuspended)
		assert.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		err := tenant.SetStatus(TenantStatus("archived"))
		assert.Error(t, err)
	})

	t.Run("reactivates", func(t *testing.T) {
		err := tenant.SetStatus(TenantStatusActive)
		require.NoError(t, err)
		assert.True(t, tenant.IsActive())
	})
}

func TestTenantRename(t *testing.T) {
	tenant, err := NewTenant("Acme Corp", "acme-corp", uuid.New())
	require.NoError(t, err)

	require.NoError(t, tenant.Rename("Acme Incorporated"))
	assert.Equal(t, "Acme Incorporated", tenant.Name)
	assert.Equal(t, "acme-corp", tenant.Slug)

	assert.Error(t, tenant.Rename(""))
}
