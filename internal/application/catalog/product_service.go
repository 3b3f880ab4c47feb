package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// List returns all products, optionally limited to active ones
func (s *ProductService) List(ctx context.Context, input ProductListInput) ([]*catalog.Product, error) {
	products, err := s.productRepo.FindAll(ctx, input.ActiveOnly)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}
	return products, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

// Create registers a new product. Slug collisions with any existing
// product, active or not, are rejected as conflicts.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*catalog.Product, error) {
	product, err := catalog.NewProduct(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	if input.Description != "" {
		if err := product.SetDescription(input.Description); err != nil {
			return nil, err
		}
	}
	if input.Icon != "" || input.Color != "" {
		if err := product.SetAppearance(input.Icon, input.Color); err != nil {
			return nil, err
		}
	}
	if input.BaseURL != "" {
		if err := product.SetBaseURL(input.BaseURL); err != nil {
			return nil, err
		}
	}
	if input.DefaultConfig != "" {
		product.SetDefaultConfig(input.DefaultConfig)
	}

	// Uniqueness is enforced by the store's constraint; the repository
	// maps violations to the conflict error.
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug))

	return product, nil
}
