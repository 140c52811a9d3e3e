package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is an immutable line item snapshot taken at order creation
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Order represents the order domain entity. Items and totals are fixed
// at creation time and never recomputed.
type Order struct {
	ID              string
	OrderNumber     string
	CustomerID      string
	CustomerName    string
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	PaymentMethod   string
	PaymentStatus   PaymentStatus
	DeliveryAddress string
	Notes           string
	OrderDate       time.Time
	DeliveryDate    *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanCancel reports whether the order may still be cancelled.
// Only delivered and already-cancelled orders are blocked.
func (o *Order) CanCancel() bool {
	return o.Status != OrderStatusDelivered && o.Status != OrderStatusCancelled
}

// Cancel marks the order cancelled
func (o *Order) Cancel() {
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
}
