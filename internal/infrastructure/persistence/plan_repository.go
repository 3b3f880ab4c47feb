package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Create creates a new plan
func (r *GormPlanRepository) Create(ctx context.Context, plan *catalog.Plan) error {
	model := models.PlanModelFromDomain(plan)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing plan
func (r *GormPlanRepository) Update(ctx context.Context, plan *catalog.Plan) error {
	model := models.PlanModelFromDomain(plan)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a plan by ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a plan by its slug
func (r *GormPlanRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Plan, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, shared.ErrNotFound
	}
	var model models.PlanModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all plans ordered by name
func (r *GormPlanRepository) FindAll(ctx context.Context) ([]*catalog.Plan, error) {
	var planModels []*models.PlanModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&planModels).Error; err != nil {
		return nil, err
	}

	plans := make([]*catalog.Plan, len(planModels))
	for i, model := range planModels {
		plans[i] = model.ToDomain()
	}
	return plans, nil
}

// FindPlanProducts returns the product grants of a plan ordered by sort order
func (r *GormPlanRepository) FindPlanProducts(ctx context.Context, planID uuid.UUID) ([]*catalog.PlanProduct, error) {
	var grantModels []*models.PlanProductModel
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("sort_order asc").
		Find(&grantModels).Error; err != nil {
		return nil, err
	}

	grants := make([]*catalog.PlanProduct, len(grantModels))
	for i, model := range grantModels {
		grants[i] = model.ToDomain()
	}
	return grants, nil
}

// AddPlanProduct grants a product to a plan
func (r *GormPlanRepository) AddPlanProduct(ctx context.Context, grant *catalog.PlanProduct) error {
	model := models.PlanProductModelFromDomain(grant)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Ensure GormPlanRepository implements PlanRepository
var _ catalog.PlanRepository = (*GormPlanRepository)(nil)
