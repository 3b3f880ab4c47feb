package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product. Implementations must map a unique
	// constraint violation on slug to shared.ErrAlreadyExists.
	Create(ctx context.Context, product *Product) error

	// Update updates an existing product
	Update(ctx context.Context, product *Product) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll returns all products, optionally restricted to active ones
	FindAll(ctx context.Context, activeOnly bool) ([]*Product, error)

	// FindByIDs returns the products with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
}
