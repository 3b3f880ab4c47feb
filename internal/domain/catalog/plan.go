package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
)

// Plan represents a template of product entitlements a tenant subscribes to
type Plan struct {
	shared.BaseAggregateRoot
	Name string
	Slug string
}

// NewPlan creates a new plan
func NewPlan(name, slug string) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PLAN_NAME", "Plan name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PLAN_NAME", "Plan name cannot exceed 200 characters")
	}
	if err := identity.ValidateSlug(slug); err != nil {
		return nil, err
	}

	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(strings.TrimSpace(slug)),
	}, nil
}

// PlanProduct grants a product to every tenant on the plan, with the
// plan's default configuration for that product
type PlanProduct struct {
	shared.BaseEntity
	PlanID    uuid.UUID
	ProductID uuid.UUID
	Config    string // JSON payload tenants inherit unless they override it
	SortOrder int
}

// NewPlanProduct grants a product to a plan
func NewPlanProduct(planID, productID uuid.UUID, config string, sortOrder int) (*PlanProduct, error) {
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN_ID", "Plan ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if config == "" {
		config = "{}"
	}

	return &PlanProduct{
		BaseEntity: shared.NewBaseEntity(),
		PlanID:     planID,
		ProductID:  productID,
		Config:     config,
		SortOrder:  sortOrder,
	}, nil
}

// SetConfig replaces the plan-level config for this product
func (pp *PlanProduct) SetConfig(config string) {
	if config == "" {
		config = "{}"
	}
	pp.Config = config
	pp.Touch()
}
