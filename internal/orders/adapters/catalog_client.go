package adapters

import (
	"context"

	catalogapp "go-grocery/internal/catalog/application"
	"go-grocery/internal/orders/ports"
)

// CatalogClient adapts the catalog use case to the order engine's
// product view. Lookups resolve soft-deleted products too, so existing
// orders can still be cancelled after a product is removed.
type CatalogClient struct {
	catalog *catalogapp.ProductUseCase
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(catalog *catalogapp.ProductUseCase) *CatalogClient {
	return &CatalogClient{catalog: catalog}
}

// ProductByID retrieves a product regardless of its active flag
func (c *CatalogClient) ProductByID(ctx context.Context, productID string) (*ports.ProductInfo, error) {
	product, err := c.catalog.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ports.ProductInfo{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
	}, nil
}

// AdjustStock atomically changes a product's stock quantity
func (c *CatalogClient) AdjustStock(ctx context.Context, productID string, delta int) error {
	return c.catalog.AdjustStock(ctx, productID, delta)
}
