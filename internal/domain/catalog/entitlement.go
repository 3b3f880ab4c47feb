package catalog

import (
	"github.com/google/uuid"
)

// Entitlement is the resolved view of one product for one tenant after
// merging the plan grant with any tenant-level override
type Entitlement struct {
	Product         *Product
	HasAccess       bool
	EffectiveConfig string
}

// ResolveEntitlements merges a plan's product grants with a tenant's
// overrides. The result has exactly one entry per plan grant, in grant
// order. Access requires an override row that is active; a grant with
// no override resolves to no access. The effective config is the
// override's config when set, otherwise the plan-level config.
// Overrides for products the plan does not grant are ignored, as are
// grants whose product no longer exists.
func ResolveEntitlements(grants []*PlanProduct, products map[uuid.UUID]*Product, overrides []*TenantProduct) []*Entitlement {
	byProduct := make(map[uuid.UUID]*TenantProduct, len(overrides))
	for _, tp := range overrides {
		byProduct[tp.ProductID] = tp
	}

	entitlements := make([]*Entitlement, 0, len(grants))
	for _, grant := range grants {
		product, ok := products[grant.ProductID]
		if !ok {
			continue
		}

		config := grant.Config
		hasAccess := false
		if tp, ok := byProduct[grant.ProductID]; ok {
			hasAccess = tp.IsActive
			if tp.Config != nil {
				config = *tp.Config
			}
		}

		entitlements = append(entitlements, &Entitlement{
			Product:         product,
			HasAccess:       hasAccess,
			EffectiveConfig: config,
		})
	}
	return entitlements
}
