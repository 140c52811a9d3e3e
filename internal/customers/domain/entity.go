package domain

import (
	"strings"
	"time"

	"go-grocery/pkg/errors"
)

// Customer represents the customer domain entity
type Customer struct {
	ID             string
	Name           string
	Email          string
	PhoneNumber    string
	ProductsBought []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCustomer creates a validated customer
func NewCustomer(name, email, phoneNumber string) (*Customer, error) {
	now := time.Now()
	customer := &Customer{
		Name:        name,
		Email:       email,
		PhoneNumber: phoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	return customer, nil
}

// Validate checks the customer fields
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.NewValidation("customer name is required", nil)
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.NewValidation("customer email is required", nil)
	}
	if strings.TrimSpace(c.PhoneNumber) == "" {
		return errors.NewValidation("customer phone number is required", nil)
	}
	return nil
}

// NewCustomerNotFound creates a not found error with the customer ID
func NewCustomerNotFound(id string) error {
	return errors.NewNotFound("customer", id)
}

// NewCustomerNotFoundByEmail creates a not found error with the email
func NewCustomerNotFoundByEmail(email string) error {
	return errors.NewNotFound("customer", email)
}

// NewDuplicateEmail creates a conflict error for an email already in use
func NewDuplicateEmail(email string) error {
	return errors.NewConflict("customer already exists with email: " + email)
}

// NewDuplicatePhoneNumber creates a conflict error for a phone number already in use
func NewDuplicatePhoneNumber(phoneNumber string) error {
	return errors.NewConflict("customer already exists with phone number: " + phoneNumber)
}
