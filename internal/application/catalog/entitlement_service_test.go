package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPlanRepository is a mock implementation of catalog.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *catalog.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *catalog.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Plan, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context) ([]*catalog.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*catalog.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindPlanProducts(ctx context.Context, planID uuid.UUID) ([]*catalog.PlanProduct, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).([]*catalog.PlanProduct), args.Error(1)
}

func (m *MockPlanRepository) AddPlanProduct(ctx context.Context, grant *catalog.PlanProduct) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

// MockTenantProductRepository is a mock implementation of catalog.TenantProductRepository
type MockTenantProductRepository struct {
	mock.Mock
}

func (m *MockTenantProductRepository) Save(ctx context.Context, override *catalog.TenantProduct) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockTenantProductRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*catalog.TenantProduct, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*catalog.TenantProduct), args.Error(1)
}

func (m *MockTenantProductRepository) FindByTenantAndProduct(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.TenantProduct, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TenantProduct), args.Error(1)
}

func (m *MockTenantProductRepository) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	args := m.Called(ctx, tenantID, productID)
	return args.Error(0)
}

type entitlementFixture struct {
	tenant    *identity.Tenant
	plan      *catalog.Plan
	analytics *catalog.Product
	billing   *catalog.Product
	grants    []*catalog.PlanProduct

	tenantRepo        *MockTenantRepository
	planRepo          *MockPlanRepository
	productRepo       *MockProductRepository
	tenantProductRepo *MockTenantProductRepository
	svc               *EntitlementService
}

func newEntitlementFixture(t *testing.T) *entitlementFixture {
	t.Helper()

	plan, err := catalog.NewPlan("Starter", "starter")
	require.NoError(t, err)
	tenant, err := identity.NewTenant("Acme Corp", "acme", plan.ID)
	require.NoError(t, err)

	analytics, err := catalog.NewProduct("Analytics", "analytics")
	require.NoError(t, err)
	billing, err := catalog.NewProduct("Billing", "billing")
	require.NoError(t, err)

	grantA, err := catalog.NewPlanProduct(plan.ID, analytics.ID, `{"seats":5}`, 0)
	require.NoError(t, err)
	grantB, err := catalog.NewPlanProduct(plan.ID, billing.ID, "{}", 1)
	require.NoError(t, err)

	f := &entitlementFixture{
		tenant:            tenant,
		plan:              plan,
		analytics:         analytics,
		billing:           billing,
		grants:            []*catalog.PlanProduct{grantA, grantB},
		tenantRepo:        new(MockTenantRepository),
		planRepo:          new(MockPlanRepository),
		productRepo:       new(MockProductRepository),
		tenantProductRepo: new(MockTenantProductRepository),
	}
	f.svc = NewEntitlementService(f.tenantRepo, f.planRepo, f.productRepo, f.tenantProductRepo, zap.NewNop())
	return f
}

func (f *entitlementFixture) expectResolution(ctx context.Context, overrides []*catalog.TenantProduct) {
	f.tenantRepo.On("FindByID", ctx, f.tenant.ID).Return(f.tenant, nil)
	f.planRepo.On("FindPlanProducts", ctx, f.plan.ID).Return(f.grants, nil)
	f.tenantProductRepo.On("FindByTenant", ctx, f.tenant.ID).Return(overrides, nil)
	f.productRepo.On("FindByIDs", ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*catalog.Product{f.analytics, f.billing}, nil)
}

func TestEntitlementService_ResolveTenantProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown tenant", func(t *testing.T) {
		f := newEntitlementFixture(t)
		id := uuid.New()
		f.tenantRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.ResolveTenantProducts(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("no overrides", func(t *testing.T) {
		f := newEntitlementFixture(t)
		f.expectResolution(ctx, []*catalog.TenantProduct{})

		result, err := f.svc.ResolveTenantProducts(ctx, f.tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, f.tenant.ID, result.Tenant.ID)
		require.Len(t, result.Entitlements, 2)
		assert.False(t, result.Entitlements[0].HasAccess)
		assert.Equal(t, `{"seats":5}`, result.Entitlements[0].EffectiveConfig)
	})

	t.Run("active override grants access and shadows config", func(t *testing.T) {
		f := newEntitlementFixture(t)
		config := `{"seats":50}`
		override, err := catalog.NewTenantProduct(f.tenant.ID, f.analytics.ID, true, &config)
		require.NoError(t, err)
		f.expectResolution(ctx, []*catalog.TenantProduct{override})

		result, err := f.svc.ResolveTenantProducts(ctx, f.tenant.ID)
		require.NoError(t, err)
		require.Len(t, result.Entitlements, 2)
		assert.True(t, result.Entitlements[0].HasAccess)
		assert.Equal(t, config, result.Entitlements[0].EffectiveConfig)
		assert.False(t, result.Entitlements[1].HasAccess)
	})

	t.Run("orphaned override is ignored", func(t *testing.T) {
		f := newEntitlementFixture(t)
		override, err := catalog.NewTenantProduct(f.tenant.ID, uuid.New(), true, nil)
		require.NoError(t, err)
		f.expectResolution(ctx, []*catalog.TenantProduct{override})

		result, err := f.svc.ResolveTenantProducts(ctx, f.tenant.ID)
		require.NoError(t, err)
		assert.Len(t, result.Entitlements, 2)
	})
}

func TestEntitlementService_SetTenantProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new override", func(t *testing.T) {
		f := newEntitlementFixture(t)
		f.tenantRepo.On("FindByID", ctx, f.tenant.ID).Return(f.tenant, nil)
		f.productRepo.On("FindByID", ctx, f.analytics.ID).Return(f.analytics, nil)
		f.tenantProductRepo.On("FindByTenantAndProduct", ctx, f.tenant.ID, f.analytics.ID).
			Return(nil, shared.ErrNotFound)
		f.tenantProductRepo.On("Save", ctx, mock.AnythingOfType("*catalog.TenantProduct")).Return(nil)

		override, err := f.svc.SetTenantProduct(ctx, SetTenantProductInput{
			TenantID:  f.tenant.ID,
			ProductID: f.analytics.ID,
			IsActive:  true,
		})
		require.NoError(t, err)
		assert.True(t, override.IsActive)
		assert.Nil(t, override.Config)
	})

	t.Run("updates existing override", func(t *testing.T) {
		f := newEntitlementFixture(t)
		existing, err := catalog.NewTenantProduct(f.tenant.ID, f.analytics.ID, true, nil)
		require.NoError(t, err)

		f.tenantRepo.On("FindByID", ctx, f.tenant.ID).Return(f.tenant, nil)
		f.productRepo.On("FindByID", ctx, f.analytics.ID).Return(f.analytics, nil)
		f.tenantProductRepo.On("FindByTenantAndProduct", ctx, f.tenant.ID, f.analytics.ID).
			Return(existing, nil)
		f.tenantProductRepo.On("Save", ctx, existing).Return(nil)

		override, err := f.svc.SetTenantProduct(ctx, SetTenantProductInput{
			TenantID:  f.tenant.ID,
			ProductID: f.analytics.ID,
			IsActive:  false,
		})
		require.NoError(t, err)
		assert.False(t, override.IsActive)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newEntitlementFixture(t)
		id := uuid.New()
		f.tenantRepo.On("FindByID", ctx, f.tenant.ID).Return(f.tenant, nil)
		f.productRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.SetTenantProduct(ctx, SetTenantProductInput{
			TenantID:  f.tenant.ID,
			ProductID: id,
		})
		assert.Error(t, err)
	})
}
