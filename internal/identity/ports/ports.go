package ports

import (
	"context"

	"go-grocery/internal/identity/domain"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, login string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher publishes identity lifecycle events
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
}
