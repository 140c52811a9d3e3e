package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"go-grocery/internal/orders/domain"
)

// OrderRepository defines order persistence operations
type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]*domain.Order, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
}

// ProductInfo is the catalog view the order engine needs
type ProductInfo struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}

// ProductCatalog resolves products and adjusts their stock.
// ProductByID resolves soft-deleted products too, so that existing
// orders keep working after a product is removed from the catalog.
type ProductCatalog interface {
	ProductByID(ctx context.Context, productID string) (*ProductInfo, error)
	AdjustStock(ctx context.Context, productID string, delta int) error
}

// EventPublisher publishes order lifecycle events
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderCancelled(ctx context.Context, order *domain.Order) error
}
