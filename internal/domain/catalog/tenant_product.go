package catalog

import (
	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// TenantProduct is a tenant-level override of a product grant. Its
// IsActive flag gates access and its Config, when set, shadows the
// plan-level config for the same product.
type TenantProduct struct {
	shared.BaseEntity
	TenantID  uuid.UUID
	ProductID uuid.UUID
	IsActive  bool
	Config    *string // nil means inherit the plan-level config
}

// NewTenantProduct creates an override for a tenant/product pair
func NewTenantProduct(tenantID, productID uuid.UUID, isActive bool, config *string) (*TenantProduct, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}

	return &TenantProduct{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ProductID:  productID,
		IsActive:   isActive,
		Config:     config,
	}, nil
}

// SetActive toggles access to the product for this tenant
func (tp *TenantProduct) SetActive(active bool) {
	tp.IsActive = active
	tp.Touch()
}

// SetConfig sets the tenant-level config override. Passing nil reverts
// the tenant to the plan-level config.
func (tp *TenantProduct) SetConfig(config *string) {
	tp.Config = config
	tp.Touch()
}
