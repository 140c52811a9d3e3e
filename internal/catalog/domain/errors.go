package domain

import "go-grocery/pkg/errors"

// Domain-specific errors
var (
	ErrNameRequired  = errors.NewValidation("product name is required", nil)
	ErrInvalidPrice  = errors.NewValidation("product price must be positive", nil)
	ErrNegativeStock = errors.NewValidation("stock quantity cannot be negative", nil)
)

// NewProductNotFound creates a not found error with the product ID
func NewProductNotFound(id string) error {
	return errors.NewNotFound("product", id)
}
