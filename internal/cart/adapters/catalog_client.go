package adapters

import (
	"context"

	catalogapp "go-grocery/internal/catalog/application"
	"go-grocery/internal/cart/ports"
)

// CatalogClient adapts the catalog use case to the cart engine's
// read-only product view
type CatalogClient struct {
	catalog *catalogapp.ProductUseCase
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(catalog *catalogapp.ProductUseCase) *CatalogClient {
	return &CatalogClient{catalog: catalog}
}

// ActiveProduct retrieves an active product by ID
func (c *CatalogClient) ActiveProduct(ctx context.Context, productID string) (*ports.ProductInfo, error) {
	product, err := c.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ports.ProductInfo{
		ID:            product.ID,
		Name:          product.Name,
		Category:      product.Category,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		ImageURL:      product.ImageURL,
	}, nil
}
