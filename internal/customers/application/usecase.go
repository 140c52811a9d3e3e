package application

import (
	"context"

	"go.uber.org/zap"

	"go-grocery/internal/customers/domain"
	"go-grocery/internal/customers/ports"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// CustomerUseCase handles customer business logic
type CustomerUseCase struct {
	repo ports.CustomerRepository
	log  *logger.Logger
}

// NewCustomerUseCase creates a new customer use case
func NewCustomerUseCase(repo ports.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{
		repo: repo,
		log:  log,
	}
}

// CustomerInput carries the writable fields of a customer
type CustomerInput struct {
	Name        string
	Email       string
	PhoneNumber string
}

// CreateCustomer creates a customer, enforcing email and phone uniqueness
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(input.Name, input.Email, input.PhoneNumber)
	if err != nil {
		return nil, err
	}

	exists, err := uc.repo.ExistsByEmail(ctx, customer.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEmail(customer.Email)
	}

	exists, err = uc.repo.ExistsByPhoneNumber(ctx, customer.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicatePhoneNumber(customer.PhoneNumber)
	}

	if err := uc.repo.Save(ctx, customer); err != nil {
		return nil, errors.NewInternal("failed to create customer", err)
	}

	uc.log.WithContext(ctx).Info("customer created",
		zap.String("customer_id", customer.ID),
		zap.String("name", customer.Name),
	)

	return customer, nil
}

// UpdateCustomer rewrites a customer's contact details. Uniqueness is
// only re-checked for values that actually change.
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error) {
	customer, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if customer.Email != input.Email {
		exists, err := uc.repo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewDuplicateEmail(input.Email)
		}
	}

	if customer.PhoneNumber != input.PhoneNumber {
		exists, err := uc.repo.ExistsByPhoneNumber(ctx, input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewDuplicatePhoneNumber(input.PhoneNumber)
		}
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.PhoneNumber = input.PhoneNumber

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, customer); err != nil {
		return nil, errors.NewInternal("failed to update customer", err)
	}

	return customer, nil
}

// DeleteCustomer removes a customer
func (uc *CustomerUseCase) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return errors.NewInternal("failed to delete customer", err)
	}

	uc.log.WithContext(ctx).Info("customer deleted", zap.String("customer_id", id))
	return nil
}

// GetCustomer retrieves a customer by ID
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.repo.FindByID(ctx, id)
}

// GetCustomerByEmail retrieves a customer by email
func (uc *CustomerUseCase) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return uc.repo.FindByEmail(ctx, email)
}

// ListCustomers retrieves all customers
func (uc *CustomerUseCase) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return uc.repo.FindAll(ctx)
}
