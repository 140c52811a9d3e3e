package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the product domain entity
type Product struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	StockQuantity int
	ImageURL      string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate validates the product entity
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price.IsNegative() || (p.Active && !p.Price.IsPositive()) {
		return ErrInvalidPrice
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// NewProduct creates a new active product with validation
func NewProduct(name, description, category string, price decimal.Decimal, stockQuantity int, imageURL string) (*Product, error) {
	now := time.Now()
	product := &Product{
		Name:          name,
		Description:   description,
		Category:      category,
		Price:         price,
		StockQuantity: stockQuantity,
		ImageURL:      imageURL,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Touch refreshes the update timestamp
func (p *Product) Touch() {
	p.UpdatedAt = time.Now()
}
