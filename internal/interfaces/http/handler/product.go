package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/portal/backend/internal/application/catalog"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary      List products
// @Description  Returns the product catalog, optionally restricted to active products
// @Tags         products
// @Produce      json
// @Param        active query bool false "Only return active products"
// @Success      200 {object} dto.Response{data=[]ProductResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	products, err := h.productService.List(c.Request.Context(), appcatalog.ProductListInput{
		ActiveOnly: activeOnly,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = productResponseFrom(product)
	}
	h.Success(c, responses)
}

// Create godoc
// @Summary      Create product
// @Description  Registers a new product; slug must be unique across the catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product definition"
// @Success      201 {object} dto.Response{data=ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), appcatalog.CreateProductInput{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Icon:          req.Icon,
		Color:         req.Color,
		BaseURL:       req.BaseURL,
		DefaultConfig: req.DefaultConfig,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, productResponseFrom(product))
}
