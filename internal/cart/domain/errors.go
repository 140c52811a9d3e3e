package domain

import "go-grocery/pkg/errors"

// NewCartNotFound creates a not found error for a customer's cart
func NewCartNotFound(customerID string) error {
	return errors.NewNotFound("cart", customerID)
}

// NewCartItemNotFound creates a not found error for a cart line item
func NewCartItemNotFound(productID string) error {
	return errors.NewNotFound("cart item", productID)
}
