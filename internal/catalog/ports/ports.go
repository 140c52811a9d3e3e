package ports

import (
	"context"

	"go-grocery/internal/catalog/domain"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID retrieves a product by ID regardless of its active flag
	FindByID(ctx context.Context, id string) (*domain.Product, error)

	// FindActiveByID retrieves an active product by ID
	FindActiveByID(ctx context.Context, id string) (*domain.Product, error)

	// FindAllActive retrieves all active products
	FindAllActive(ctx context.Context) ([]*domain.Product, error)

	// FindActiveByCategory retrieves active products in a category
	FindActiveByCategory(ctx context.Context, category string) ([]*domain.Product, error)

	// Search retrieves active products matching a term across
	// name, description and category (case-insensitive)
	Search(ctx context.Context, term string) ([]*domain.Product, error)

	// FindLowStock retrieves active products with stock below threshold
	FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error)

	// Save upserts a product
	Save(ctx context.Context, product *domain.Product) error

	// AdjustStock atomically changes a product's stock by delta. A negative
	// delta that would drive stock below zero fails without modifying it.
	AdjustStock(ctx context.Context, id string, delta int) error
}
