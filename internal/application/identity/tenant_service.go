package identity

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
)

// activityWindow is the rolling window used for active-user counts
const activityWindow = 30 * 24 * time.Hour

// TenantService handles tenant directory operations
type TenantService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	planRepo   catalog.PlanRepository
	logger     *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	planRepo catalog.PlanRepository,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		planRepo:   planRepo,
		logger:     logger,
	}
}

// Create provisions a new tenant on an existing plan
func (s *TenantService) Create(ctx context.Context, input CreateTenantInput) (*identity.Tenant, error) {
	if _, err := s.planRepo.FindByID(ctx, input.PlanID); err != nil {
		return nil, shared.NewDomainError("PLAN_NOT_FOUND", "Plan not found")
	}

	exists, err := s.tenantRepo.ExistsBySlug(ctx, input.Slug)
	if err != nil {
		s.logger.Error("Failed to check tenant slug", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check slug availability")
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	tenant, err := identity.NewTenant(input.Name, input.Slug, input.PlanID)
	if err != nil {
		return nil, err
	}
	if input.Notes != "" {
		tenant.SetNotes(input.Notes)
	}

	// The slug check above races with concurrent creates, so the store
	// enforces a unique constraint and the repository maps violations
	// to the same conflict error.
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug))

	return tenant, nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}

// GetBySlug retrieves a tenant by slug
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}

// List returns a page of tenants matching the filter
func (s *TenantService) List(ctx context.Context, input TenantListInput) (*shared.Paginated[*identity.Tenant], error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	filter.Search = strings.TrimSpace(input.Search)
	if input.Status != "" {
		status := identity.TenantStatus(input.Status)
		if !status.Valid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown tenant status")
		}
		filter.Filters = map[string]interface{}{"status": string(status)}
	}

	tenants, total, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list tenants", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tenants")
	}

	result := shared.NewPaginated(tenants, total, filter.Page, filter.Limit())
	return &result, nil
}

// SetStatus transitions a tenant to a new status
func (s *TenantService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := tenant.SetStatus(identity.TenantStatus(status)); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		s.logger.Error("Failed to update tenant status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tenant")
	}

	s.logger.Info("Tenant status changed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("status", string(tenant.Status)))

	return tenant, nil
}

// CheckSlug reports whether a slug is valid and not yet taken
func (s *TenantService) CheckSlug(ctx context.Context, slug string) (bool, error) {
	if err := identity.ValidateSlug(slug); err != nil {
		return false, err
	}

	exists, err := s.tenantRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("Failed to check tenant slug", zap.Error(err))
		return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to check slug availability")
	}
	return !exists, nil
}

// GetStats returns user counts for a tenant. The active-user count uses
// a cutoff computed at call time so the 30 day window rolls forward on
// every invocation.
func (s *TenantService) GetStats(ctx context.Context, id uuid.UUID) (*TenantStats, error) {
	if _, err := s.tenantRepo.FindByID(ctx, id); err != nil {
		return nil, shared.ErrNotFound
	}

	total, err := s.userRepo.CountByTenant(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count tenant users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute tenant stats")
	}

	cutoff := time.Now().Add(-activityWindow)
	active, err := s.userRepo.CountActiveSince(ctx, id, cutoff)
	if err != nil {
		s.logger.Error("Failed to count active tenant users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute tenant stats")
	}

	return &TenantStats{
		TotalUsers:  total,
		ActiveUsers: active,
	}, nil
}
