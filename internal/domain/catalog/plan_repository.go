package catalog

import (
	"context"

	"github.com/google/uuid"
)

// PlanRepository defines the persistence interface for plans
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	Update(ctx context.Context, plan *Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	FindBySlug(ctx context.Context, slug string) (*Plan, error)
	FindAll(ctx context.Context) ([]*Plan, error)

	// FindPlanProducts returns the product grants of a plan ordered by
	// SortOrder ascending
	FindPlanProducts(ctx context.Context, planID uuid.UUID) ([]*PlanProduct, error)
	AddPlanProduct(ctx context.Context, grant *PlanProduct) error
}
