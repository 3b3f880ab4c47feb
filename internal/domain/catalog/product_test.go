package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid fields", func(t *testing.T) {
		product, err := NewProduct("Analytics Suite", "analytics")
		require.NoError(t, err)

		assert.Equal(t, "Analytics Suite", product.Name)
		assert.Equal(t, "analytics", product.Slug)
		assert.Equal(t, "{}", product.DefaultConfig)
		assert.True(t, product.IsActive)
		assert.NotEmpty(t, product.GetDomainEvents())
	})

	t.Run("normalizes slug to lowercase", func(t *testing.T) {
		product, err := NewProduct("Analytics", "Analytics")
		require.NoError(t, err)
		assert.Equal(t, "analytics", product.Slug)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "analytics")
		assert.Error(t, err)
	})

	t.Run("rejects invalid slug", func(t *testing.T) {
		_, err := NewProduct("Analytics", "not a slug")
		assert.Error(t, err)
	})
}

func TestProductLifecycle(t *testing.T) {
	product, err := NewProduct("Analytics", "analytics")
	require.NoError(t, err)

	require.NoError(t, product.Deactivate())
	assert.False(t, product.IsActive)

	require.NoError(t, product.Activate())
	assert.True(t, product.IsActive)

	// Repeating a transition is rejected
	assert.Error(t, product.Activate())
}

func TestProductSetDescription(t *testing.T) {
	product, err := NewProduct("Analytics", "analytics")
	require.NoError(t, err)

	require.NoError(t, product.SetDescription("Dashboards and reports"))
	assert.Equal(t, "Dashboards and reports", product.Description)

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, product.SetDescription(string(long)))
}
