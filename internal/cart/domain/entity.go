package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a line item inside a cart. Product fields are snapshots
// taken when the item was added, not live references.
type CartItem struct {
	ProductID       string
	ProductName     string
	ProductCategory string
	Quantity        int
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
	ImageURL        string
}

// Cart is the per-customer mutable line-item list. A customer has at most
// one live cart, keyed by customer ID.
type Cart struct {
	ID          string
	CustomerID  string
	Items       []CartItem
	TotalAmount decimal.Decimal
	TotalItems  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCart creates an empty cart for a customer
func NewCart(customerID string) *Cart {
	now := time.Now()
	return &Cart{
		CustomerID:  customerID,
		Items:       []CartItem{},
		TotalAmount: decimal.Zero,
		TotalItems:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ItemIndex returns the index of the line item for a product, or -1
func (c *Cart) ItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveItem drops the line item for a product. Removing an absent
// product is a no-op.
func (c *Cart) RemoveItem(productID string) {
	if i := c.ItemIndex(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// RecalculateTotals rewrites the cached aggregates from the line items:
// total amount is the sum of line totals, total items the sum of quantities.
func (c *Cart) RecalculateTotals() {
	total := decimal.Zero
	count := 0
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice)
		count += c.Items[i].Quantity
	}
	c.TotalAmount = total
	c.TotalItems = count
	c.UpdatedAt = time.Now()
}
