package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTenantProductRepository implements TenantProductRepository using GORM
type GormTenantProductRepository struct {
	db *gorm.DB
}

// NewGormTenantProductRepository creates a new GormTenantProductRepository
func NewGormTenantProductRepository(db *gorm.DB) *GormTenantProductRepository {
	return &GormTenantProductRepository{db: db}
}

// Save inserts the override or updates the existing row for the same
// tenant/product pair
func (r *GormTenantProductRepository) Save(ctx context.Context, override *catalog.TenantProduct) error {
	model := models.TenantProductModelFromDomain(override)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_active", "config", "updated_at"}),
		}).
		Create(model).Error
}

// FindByTenant returns all overrides for a tenant
func (r *GormTenantProductRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*catalog.TenantProduct, error) {
	var overrideModels []*models.TenantProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&overrideModels).Error; err != nil {
		return nil, err
	}

	overrides := make([]*catalog.TenantProduct, len(overrideModels))
	for i, model := range overrideModels {
		overrides[i] = model.ToDomain()
	}
	return overrides, nil
}

// FindByTenantAndProduct returns the override for a tenant/product pair
func (r *GormTenantProductRepository) FindByTenantAndProduct(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.TenantProduct, error) {
	var model models.TenantProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete removes the override for a tenant/product pair
func (r *GormTenantProductRepository) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Delete(&models.TenantProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTenantProductRepository implements TenantProductRepository
var _ catalog.TenantProductRepository = (*GormTenantProductRepository)(nil)
