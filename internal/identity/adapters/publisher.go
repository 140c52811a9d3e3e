package adapters

import (
	"context"

	"go-grocery/internal/identity/domain"
	"go-grocery/pkg/events"
	"go-grocery/pkg/logger"
	"go-grocery/pkg/rabbitmq"
)

// EventPublisher publishes identity events to the users exchange
type EventPublisher struct {
	publisher *rabbitmq.Publisher
}

// NewEventPublisher creates a publisher bound to the users exchange
func NewEventPublisher(conn *rabbitmq.Connection, log *logger.Logger) (*EventPublisher, error) {
	publisher, err := rabbitmq.NewPublisher(conn, events.ExchangeUsers, log)
	if err != nil {
		return nil, err
	}
	return &EventPublisher{publisher: publisher}, nil
}

// PublishUserRegistered publishes a user.registered event
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	event := events.NewUserRegisteredEvent(
		user.ID,
		user.Username,
		user.Email,
		user.CreatedAt,
		logger.GetTraceID(ctx),
	)
	return p.publisher.Publish(ctx, events.RoutingKeyUserRegistered, event)
}
