package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"go-grocery/internal/cart/domain"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByCustomerID retrieves a customer's cart
	FindByCustomerID(ctx context.Context, customerID string) (*domain.Cart, error)

	// Save upserts a cart, keyed by customer ID
	Save(ctx context.Context, cart *domain.Cart) error

	// DeleteByCustomerID removes a customer's cart. Deleting an absent
	// cart is a no-op.
	DeleteByCustomerID(ctx context.Context, customerID string) error
}

// ProductInfo is a read-only snapshot of a catalog product
type ProductInfo struct {
	ID            string
	Name          string
	Category      string
	Price         decimal.Decimal
	StockQuantity int
	ImageURL      string
}

// ProductCatalog is the cart engine's view of the catalog. Stock is
// read-only here; carts never reserve inventory.
type ProductCatalog interface {
	// ActiveProduct retrieves an active product by ID
	ActiveProduct(ctx context.Context, productID string) (*ProductInfo, error)
}
