package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *Tenant) error

	// Update updates an existing tenant
	Update(ctx context.Context, tenant *Tenant) error

	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindBySlug finds a tenant by its slug
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindAll returns tenants matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Tenant, int64, error)

	// ExistsBySlug checks if a slug is already taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
