package domain

import (
	"strings"
	"time"

	"go-grocery/pkg/errors"
)

// User represents an account that can authenticate against the API
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	PhoneNumber  string
	Roles        []string
	Enabled      bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the user fields. The password hash is checked
// separately since admin updates may leave it untouched.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.NewValidation("username is required", nil)
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.NewValidation("email is required", nil)
	}
	return nil
}

// Touch updates the modification timestamp
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// NewUserNotFound creates a not found error with the user ID
func NewUserNotFound(id string) error {
	return errors.NewNotFound("user", id)
}

// NewUserNotFoundByUsername creates a not found error with the username
func NewUserNotFoundByUsername(username string) error {
	return errors.NewNotFound("user", username)
}

// NewDuplicateUsername creates a conflict error for a taken username
func NewDuplicateUsername(username string) error {
	return errors.NewConflict("username is already taken: " + username)
}

// NewDuplicateEmail creates a conflict error for a registered email
func NewDuplicateEmail(email string) error {
	return errors.NewConflict("email is already registered: " + email)
}
