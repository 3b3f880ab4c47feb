package catalog

import (
	"context"

	"github.com/google/uuid"
)

// TenantProductRepository defines the persistence interface for
// tenant-level product overrides
type TenantProductRepository interface {
	// Save inserts the override or updates the existing row for the
	// same tenant/product pair
	Save(ctx context.Context, override *TenantProduct) error
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*TenantProduct, error)
	FindByTenantAndProduct(ctx context.Context, tenantID, productID uuid.UUID) (*TenantProduct, error)
	Delete(ctx context.Context, tenantID, productID uuid.UUID) error
}
