package domain

import "strings"

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusReturned   OrderStatus = "RETURNED"
)

// orderTransitions defines the legal moves of the order status machine.
// Cancellation has its own guard (see Order.CanCancel) and is allowed
// from more states than the update path.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusReturned},
	OrderStatusCancelled:  {},
	OrderStatusReturned:   {},
}

// ParseOrderStatus converts a case-insensitive token into an order status.
// Unrecognized tokens are rejected.
func ParseOrderStatus(token string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(token))
	if _, ok := orderTransitions[status]; !ok {
		return "", NewInvalidOrderStatus(token)
	}
	return status, nil
}

// OrderStatusFromStored converts a stored token into an order status,
// falling back to PENDING for malformed documents.
func OrderStatusFromStored(token string) OrderStatus {
	status, err := ParseOrderStatus(token)
	if err != nil {
		return OrderStatusPending
	}
	return status
}

// CanTransitionTo reports whether the status machine permits the move
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// PaymentStatus represents the payment status of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusPaid:      {PaymentStatusRefunded},
	PaymentStatusFailed:    {},
	PaymentStatusRefunded:  {},
	PaymentStatusCancelled: {},
}

// ParsePaymentStatus converts a case-insensitive token into a payment
// status. Unrecognized tokens are rejected.
func ParsePaymentStatus(token string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToUpper(token))
	if _, ok := paymentTransitions[status]; !ok {
		return "", NewInvalidPaymentStatus(token)
	}
	return status, nil
}

// PaymentStatusFromStored converts a stored token into a payment status,
// falling back to PENDING for malformed documents.
func PaymentStatusFromStored(token string) PaymentStatus {
	status, err := ParsePaymentStatus(token)
	if err != nil {
		return PaymentStatusPending
	}
	return status
}

// CanTransitionTo reports whether the payment machine permits the move
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, next := range paymentTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
