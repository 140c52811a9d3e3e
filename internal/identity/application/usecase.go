package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-grocery/internal/identity/domain"
	"go-grocery/internal/identity/ports"
	"go-grocery/pkg/auth"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// UserUseCase handles registration, login and user management
type UserUseCase struct {
	repo      ports.UserRepository
	tokens    *auth.TokenManager
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewUserUseCase creates a new user use case. The publisher may be nil,
// in which case lifecycle events are skipped.
func NewUserUseCase(repo ports.UserRepository, tokens *auth.TokenManager, publisher ports.EventPublisher, log *logger.Logger) *UserUseCase {
	return &UserUseCase{
		repo:      repo,
		tokens:    tokens,
		publisher: publisher,
		log:       log,
	}
}

// RegisterInput carries the self-service registration fields
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	PhoneNumber string
}

// AuthResult bundles a signed token with the authenticated user
type AuthResult struct {
	Token string
	User  *domain.User
}

// Register creates an account with the default customer role and
// signs the caller in
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Password == "" {
		return nil, errors.NewValidation("password is required", nil)
	}

	exists, err := uc.repo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateUsername(input.Username)
	}

	exists, err = uc.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEmail(input.Email)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, errors.NewInternal("failed to hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		Roles:        []string{auth.RoleCustomer},
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, user); err != nil {
		return nil, errors.NewInternal("failed to register user", err)
	}

	uc.log.WithContext(ctx).Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	if uc.publisher != nil {
		if err := uc.publisher.PublishUserRegistered(ctx, user); err != nil {
			uc.log.WithContext(ctx).Warn("failed to publish user registered event",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	return uc.issueToken(user)
}

// Login verifies credentials against the stored hash and issues a
// token. The login field matches either username or email.
func (uc *UserUseCase) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	user, err := uc.repo.FindByUsernameOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !user.Enabled {
		return nil, errors.NewUnauthorized("account is disabled")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, errors.NewUnauthorized("invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := uc.repo.Save(ctx, user); err != nil {
		return nil, errors.NewInternal("failed to record login", err)
	}

	uc.log.WithContext(ctx).Info("user logged in", zap.String("username", user.Username))

	return uc.issueToken(user)
}

// CurrentUser resolves the authenticated principal to its user record
func (uc *UserUseCase) CurrentUser(ctx context.Context, principal *auth.Principal) (*domain.User, error) {
	return uc.repo.FindByUsername(ctx, principal.Username)
}

// UserInput carries the admin-managed fields of a user
type UserInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	PhoneNumber string
	Roles       []string
	Enabled     bool
}

// CreateUser creates an account on behalf of an administrator
func (uc *UserUseCase) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	if input.Password == "" {
		return nil, errors.NewValidation("password is required", nil)
	}

	exists, err := uc.repo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateUsername(input.Username)
	}

	exists, err = uc.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEmail(input.Email)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, errors.NewInternal("failed to hash password", err)
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = []string{auth.RoleCustomer}
	}

	now := time.Now()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		Roles:        roles,
		Enabled:      input.Enabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, user); err != nil {
		return nil, errors.NewInternal("failed to create user", err)
	}

	uc.log.WithContext(ctx).Info("user created",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, nil
}

// UpdateUser rewrites a user's profile. Uniqueness is only re-checked
// for values that change; an empty password leaves the hash untouched.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Username != input.Username {
		exists, err := uc.repo.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewDuplicateUsername(input.Username)
		}
	}

	if user.Email != input.Email {
		exists, err := uc.repo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewDuplicateEmail(input.Email)
		}
	}

	user.Username = input.Username
	user.Email = input.Email
	user.FullName = input.FullName
	user.PhoneNumber = input.PhoneNumber
	user.Roles = input.Roles
	user.Enabled = input.Enabled
	user.Touch()

	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, errors.NewInternal("failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, user); err != nil {
		return nil, errors.NewInternal("failed to update user", err)
	}

	return user, nil
}

// DeleteUser removes a user
func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return errors.NewInternal("failed to delete user", err)
	}

	uc.log.WithContext(ctx).Info("user deleted", zap.String("user_id", id))
	return nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.repo.FindByID(ctx, id)
}

// GetUserByUsername retrieves a user by username
func (uc *UserUseCase) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.repo.FindByUsername(ctx, username)
}

// ListUsers retrieves all users
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *UserUseCase) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := uc.tokens.Generate(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
