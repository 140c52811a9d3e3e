package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("FOO")
	assert.Error(t, err)
}

func TestOrderStatusFromStored_DefaultsToPending(t *testing.T) {
	assert.Equal(t, OrderStatusDelivered, OrderStatusFromStored("DELIVERED"))
	assert.Equal(t, OrderStatusPending, OrderStatusFromStored("garbage"))
	assert.Equal(t, OrderStatusPending, OrderStatusFromStored(""))
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusDelivered.CanTransitionTo(OrderStatusReturned))

	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusReturned.CanTransitionTo(OrderStatusPending))
}

func TestParsePaymentStatus(t *testing.T) {
	status, err := ParsePaymentStatus("Refunded")
	assert.NoError(t, err)
	assert.Equal(t, PaymentStatusRefunded, status)

	_, err = ParsePaymentStatus("BAR")
	assert.Error(t, err)
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusPaid))
	assert.True(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusRefunded))

	assert.False(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusFailed))
	assert.False(t, PaymentStatusFailed.CanTransitionTo(PaymentStatusPaid))
	assert.False(t, PaymentStatusRefunded.CanTransitionTo(PaymentStatusPending))
}

func TestCanCancel(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped} {
		order := Order{Status: status}
		assert.True(t, order.CanCancel(), "expected %s to be cancellable", status)
	}
	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		order := Order{Status: status}
		assert.False(t, order.CanCancel(), "expected %s to block cancellation", status)
	}
}
