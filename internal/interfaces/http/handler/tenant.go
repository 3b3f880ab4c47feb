package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/portal/backend/internal/application/catalog"
	appidentity "github.com/portal/backend/internal/application/identity"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/interfaces/http/dto"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant directory HTTP requests
type TenantHandler struct {
	BaseHandler
	tenantService      *appidentity.TenantService
	entitlementService *appcatalog.EntitlementService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *appidentity.TenantService, entitlementService *appcatalog.EntitlementService) *TenantHandler {
	return &TenantHandler{
		tenantService:      tenantService,
		entitlementService: entitlementService,
	}
}

// Create godoc
// @Summary      Create tenant
// @Description  Provisions a new tenant on the given plan; slug must be unique
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantRequest true "Tenant definition"
// @Success      201 {object} dto.Response{data=TenantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), appidentity.CreateTenantInput{
		Name:   req.Name,
		Slug:   req.Slug,
		PlanID: planID,
		Notes:  req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenantResponseFrom(tenant))
}

// List godoc
// @Summary      List tenants
// @Description  Returns a paginated tenant directory with search and status filtering
// @Tags         tenants
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Match against name or slug"
// @Param        status query string false "Filter by status"
// @Success      200 {object} dto.Response{data=[]TenantResponse}
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	result, err := h.tenantService.List(c.Request.Context(), appidentity.TenantListInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
		Status:   c.Query("status"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, tenantResponsesFrom(result.Items), result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=TenantResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{id} [get]
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantResponseFrom(tenant))
}

// GetBySlug godoc
// @Summary      Get tenant by slug
// @Tags         tenants
// @Produce      json
// @Param        slug path string true "Tenant slug"
// @Success      200 {object} dto.Response{data=TenantResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/slug/{slug} [get]
func (h *TenantHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	tenant, err := h.tenantService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantResponseFrom(tenant))
}

// CheckSlug godoc
// @Summary      Check slug availability
// @Description  Reports whether a slug is still free to claim
// @Tags         tenants
// @Produce      json
// @Param        slug query string true "Candidate slug"
// @Success      200 {object} dto.Response{data=SlugAvailabilityResponse}
// @Router       /tenants/check-slug [get]
func (h *TenantHandler) CheckSlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))
	if slug == "" {
		h.BadRequest(c, "Slug is required")
		return
	}

	available, err := h.tenantService.CheckSlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SlugAvailabilityResponse{Slug: slug, Available: available})
}

// SetStatus godoc
// @Summary      Update tenant status
// @Description  Moves a tenant between active, suspended and inactive
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Param        request body UpdateTenantStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=TenantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{id}/status [put]
func (h *TenantHandler) SetStatus(c *gin.Context) {
	id, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	var req UpdateTenantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tenant, err := h.tenantService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantResponseFrom(tenant))
}

// GetStats godoc
// @Summary      Get tenant statistics
// @Description  Returns user counts for a tenant, including recently active users
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=TenantStatsResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{id}/stats [get]
func (h *TenantHandler) GetStats(c *gin.Context) {
	id, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	stats, err := h.tenantService.GetStats(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TenantStatsResponse{
		TotalUsers:  stats.TotalUsers,
		ActiveUsers: stats.ActiveUsers,
	})
}

// GetProducts godoc
// @Summary      Resolve tenant entitlements
// @Description  Returns the tenant's plan products with access flags and effective configuration.
// @Description  Callers may only read their own tenant unless they are a super admin.
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=TenantProductsResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{id}/products [get]
func (h *TenantHandler) GetProducts(c *gin.Context) {
	id, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	if !h.canReadTenant(c, id) {
		h.Forbidden(c, "You do not have access to this tenant")
		return
	}

	result, err := h.entitlementService.ResolveTenantProducts(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TenantProductsResponse{
		Tenant:   tenantResponseFrom(result.Tenant),
		Products: entitlementResponsesFrom(result.Entitlements),
	})
}

// SetProduct godoc
// @Summary      Set tenant product override
// @Description  Enables or disables a product for a tenant and optionally overrides its configuration
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Param        productId path string true "Product ID"
// @Param        request body SetTenantProductRequest true "Override"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{id}/products/{productId} [put]
func (h *TenantHandler) SetProduct(c *gin.Context) {
	id, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetTenantProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if _, err := h.entitlementService.SetTenantProduct(c.Request.Context(), appcatalog.SetTenantProductInput{
		TenantID:  id,
		ProductID: productID,
		IsActive:  req.IsActive,
		Config:    req.Config,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *TenantHandler) parseTenantID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, false
	}
	return id, true
}

// canReadTenant allows super admins everywhere and other users only
// within their own tenant.
func (h *TenantHandler) canReadTenant(c *gin.Context, tenantID uuid.UUID) bool {
	user := middleware.GetAuthUser(c)
	if user == nil {
		return false
	}
	if user.Role == identity.RoleSuperAdmin {
		return true
	}
	return user.TenantID != nil && *user.TenantID == tenantID
}
