package ports

import (
	"context"

	"go-grocery/internal/customers/domain"
)

// CustomerRepository defines customer persistence operations
type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]*domain.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
	Save(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
}
