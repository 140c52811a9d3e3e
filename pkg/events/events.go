package events

import "time"

// Exchange names
const (
	ExchangeOrders = "orders.events"
	ExchangeUsers  = "users.events"
)

// Routing keys
const (
	RoutingKeyOrderCreated   = "order.created"
	RoutingKeyOrderCancelled = "order.cancelled"
	RoutingKeyUserRegistered = "user.registered"
)

// OrderEventPayload contains order data carried by order lifecycle events
type OrderEventPayload struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  string    `json:"customer_id"`
	TotalAmount string    `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderEvent is published on order creation and cancellation
type OrderEvent struct {
	Version   string            `json:"version"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	TraceID   string            `json:"trace_id"`
	Payload   OrderEventPayload `json:"payload"`
}

// NewOrderEvent creates an order lifecycle event
func NewOrderEvent(eventType, id, orderNumber, customerID, totalAmount, status string, createdAt time.Time, traceID string) *OrderEvent {
	return &OrderEvent{
		Version:   "1.0",
		EventType: eventType,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderEventPayload{
			ID:          id,
			OrderNumber: orderNumber,
			CustomerID:  customerID,
			TotalAmount: totalAmount,
			Status:      status,
			CreatedAt:   createdAt,
		},
	}
}

// UserRegisteredPayload contains user data
type UserRegisteredPayload struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRegisteredEvent is published when a user registers
type UserRegisteredEvent struct {
	Version   string                `json:"version"`
	EventType string                `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	TraceID   string                `json:"trace_id"`
	Payload   UserRegisteredPayload `json:"payload"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(id, username, email string, createdAt time.Time, traceID string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		Version:   "1.0",
		EventType: RoutingKeyUserRegistered,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: UserRegisteredPayload{
			ID:        id,
			Username:  username,
			Email:     email,
			CreatedAt: createdAt,
		},
	}
}
