package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add tenants table", "add_tenants_table"},
		{"Add-Tenants-Table", "add_tenants_table"},
		{"ADD_TENANTS_TABLE", "add_tenants_table"},
		{"add__tenants__table", "add_tenants_table"},
		{"seed plans v2", "seed_plans_v2"},
		{"   padded   ", "padded"},
		{"drop sessions!", "drop_sessions"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Tenant Products", "entitlement join table")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Equal(t, "Add Tenant Products", mf.Name)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_tenant_products.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_tenant_products.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: Add Tenant Products")
	assert.Contains(t, string(up), "-- Description: entitlement join table")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")
}

func TestCreateMigration_NoDescription(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "seed products", "")
	require.NoError(t, err)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.NotContains(t, string(up), "-- Description:")
}

func TestCreateMigration_MakesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db", "migrations")

	_, err := CreateMigration(dir, "init schema", "")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"20250101000000_init_schema.up.sql",
		"20250101000000_init_schema.down.sql",
		"20250102000000_add_sessions.up.sql",
		"20250102000000_add_sessions.down.sql",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"20250101000000_init_schema",
		"20250102000000_add_sessions",
	}, migrations)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))

	require.NoError(t, err)
	assert.Empty(t, migrations)
}
