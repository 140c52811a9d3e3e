package domain

import "go-grocery/pkg/errors"

// ErrEmptyOrder rejects orders with no line items
var ErrEmptyOrder = errors.NewValidation("order must contain at least one item", nil)

// NewOrderNotFound creates a not found error with the order ID
func NewOrderNotFound(id string) error {
	return errors.NewNotFound("order", id)
}

// NewInvalidOrderStatus creates a validation error for an unknown status token
func NewInvalidOrderStatus(token string) error {
	return errors.NewValidation("invalid order status: "+token, nil)
}

// NewInvalidPaymentStatus creates a validation error for an unknown payment status token
func NewInvalidPaymentStatus(token string) error {
	return errors.NewValidation("invalid payment status: "+token, nil)
}

// NewIllegalTransition creates a validation error for a move the status
// machine does not permit
func NewIllegalTransition(from, to string) error {
	return errors.NewValidation("cannot transition from "+from+" to "+to, nil)
}

// NewCancelNotAllowed creates a validation error for cancelling a
// delivered or already-cancelled order
func NewCancelNotAllowed(status string) error {
	return errors.NewValidation("cannot cancel order with status: "+status, nil)
}
