package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
)

// EntitlementService resolves which products a tenant may access
type EntitlementService struct {
	tenantRepo        identity.TenantRepository
	planRepo          catalog.PlanRepository
	productRepo       catalog.ProductRepository
	tenantProductRepo catalog.TenantProductRepository
	logger            *zap.Logger
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(
	tenantRepo identity.TenantRepository,
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	tenantProductRepo catalog.TenantProductRepository,
	logger *zap.Logger,
) *EntitlementService {
	return &EntitlementService{
		tenantRepo:        tenantRepo,
		planRepo:          planRepo,
		productRepo:       productRepo,
		tenantProductRepo: tenantProductRepo,
		logger:            logger,
	}
}

// ResolveTenantProducts computes the tenant's effective product set by
// merging its plan's grants with its own overrides. The result has one
// entry per plan grant in grant order.
func (s *EntitlementService) ResolveTenantProducts(ctx context.Context, tenantID uuid.UUID) (*TenantEntitlements, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	grants, err := s.planRepo.FindPlanProducts(ctx, tenant.PlanID)
	if err != nil {
		s.logger.Error("Failed to load plan grants",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve tenant products")
	}

	overrides, err := s.tenantProductRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to load tenant overrides",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve tenant products")
	}

	// One batched product fetch so resolution stays at a fixed number
	// of queries regardless of plan size
	productIDs := make([]uuid.UUID, 0, len(grants))
	for _, grant := range grants {
		productIDs = append(productIDs, grant.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error("Failed to load products",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve tenant products")
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &TenantEntitlements{
		Tenant:       tenant,
		Entitlements: catalog.ResolveEntitlements(grants, byID, overrides),
	}, nil
}

// SetTenantProduct upserts a tenant's override for a product
func (s *EntitlementService) SetTenantProduct(ctx context.Context, input SetTenantProductInput) (*catalog.TenantProduct, error) {
	if _, err := s.tenantRepo.FindByID(ctx, input.TenantID); err != nil {
		return nil, shared.ErrNotFound
	}
	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	override, err := s.tenantProductRepo.FindByTenantAndProduct(ctx, input.TenantID, input.ProductID)
	if err != nil {
		override, err = catalog.NewTenantProduct(input.TenantID, input.ProductID, input.IsActive, input.Config)
		if err != nil {
			return nil, err
		}
	} else {
		override.SetActive(input.IsActive)
		override.SetConfig(input.Config)
	}

	if err := s.tenantProductRepo.Save(ctx, override); err != nil {
		s.logger.Error("Failed to save tenant product override", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save tenant product")
	}

	s.logger.Info("Tenant product override saved",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Bool("is_active", input.IsActive))

	return override, nil
}
