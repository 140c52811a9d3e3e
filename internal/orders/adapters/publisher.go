package adapters

import (
	"context"

	"go-grocery/internal/orders/domain"
	"go-grocery/pkg/events"
	"go-grocery/pkg/logger"
	"go-grocery/pkg/rabbitmq"
)

// EventPublisher publishes order lifecycle events to the orders exchange
type EventPublisher struct {
	publisher *rabbitmq.Publisher
}

// NewEventPublisher creates a publisher bound to the orders exchange
func NewEventPublisher(conn *rabbitmq.Connection, log *logger.Logger) (*EventPublisher, error) {
	publisher, err := rabbitmq.NewPublisher(conn, events.ExchangeOrders, log)
	if err != nil {
		return nil, err
	}
	return &EventPublisher{publisher: publisher}, nil
}

// PublishOrderCreated publishes an order.created event
func (p *EventPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, events.RoutingKeyOrderCreated, order)
}

// PublishOrderCancelled publishes an order.cancelled event
func (p *EventPublisher) PublishOrderCancelled(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, events.RoutingKeyOrderCancelled, order)
}

func (p *EventPublisher) publish(ctx context.Context, routingKey string, order *domain.Order) error {
	event := events.NewOrderEvent(
		routingKey,
		order.ID,
		order.OrderNumber,
		order.CustomerID,
		order.TotalAmount.String(),
		string(order.Status),
		order.CreatedAt,
		logger.GetTraceID(ctx),
	)
	return p.publisher.Publish(ctx, routingKey, event)
}
