package catalog

import (
	"github.com/google/uuid"

	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/identity"
)

// CreateProductInput contains the fields needed to register a product
type CreateProductInput struct {
	Name          string
	Slug          string
	Description   string
	Icon          string
	Color         string
	BaseURL       string
	DefaultConfig string
}

// ProductListInput controls product listing
type ProductListInput struct {
	ActiveOnly bool
}

// TenantEntitlements is the resolved product view for one tenant
type TenantEntitlements struct {
	Tenant       *identity.Tenant
	Entitlements []*catalog.Entitlement
}

// SetTenantProductInput activates or deactivates a product for a tenant
// and optionally overrides its configuration
type SetTenantProductInput struct {
	TenantID  uuid.UUID
	ProductID uuid.UUID
	IsActive  bool
	Config    *string
}
