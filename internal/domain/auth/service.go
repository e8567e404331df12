package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/tx"
	"pharmastock/internal/domain/audit"
	"pharmastock/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// Service provides authentication and user management.
type Service struct {
	users      UserRepository
	txManager  tx.Manager
	jwtService *JWTService
	auditor    audit.Recorder // optional
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	users UserRepository,
	txManager tx.Manager,
	jwtService *JWTService,
	auditor audit.Recorder,
	config ServiceConfig,
) *Service {
	return &Service{
		users:      users,
		txManager:  txManager,
		jwtService: jwtService,
		auditor:    auditor,
		config:     config,
	}
}

// Login authenticates a user and returns an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenResult, error) {
	user, err := s.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	user.RecordLogin()
	user.Touch()
	if err := s.users.Update(ctx, user); err != nil {
		logger.Warn(ctx, "failed to record login time", "user_id", user.ID, "error", err)
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)

	return &TokenResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
		User:        user,
	}, nil
}

// CreateUserInput carries the fields of a user registration.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateUser registers a new user.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	if len(input.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(input.Name, input.Email, string(passwordHash), input.Role)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("check email exists: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("user", "email", user.Email)
		}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.auditor, "user", user.ID, audit.ActionCreate, user)
	logger.Info(ctx, "user created",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)
	return user, nil
}

// UpdateUserInput carries updatable user fields. Nil means keep current.
type UpdateUserInput struct {
	Name   *string
	Role   *string
	Active *bool
}

// UpdateUser modifies name, role or active flag.
func (s *Service) UpdateUser(ctx context.Context, userID id.ID, input UpdateUserInput) (*User, error) {
	var user *User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Role != nil {
			user.Role = *input.Role
		}
		if input.Active != nil {
			user.Active = *input.Active
		}
		if err := user.Validate(ctx); err != nil {
			return err
		}
		user.Touch()
		return s.users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.auditor, "user", user.ID, audit.ActionUpdate, user)
	logger.Info(ctx, "user updated", "user_id", user.ID)
	return user, nil
}

// ChangePassword replaces the user's password.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, newPassword string) error {
	if len(newPassword) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user.PasswordHash = string(passwordHash)
		user.Touch()
		return s.users.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "password changed", "user_id", userID)
	return nil
}

// DeleteUser removes a user.
func (s *Service) DeleteUser(ctx context.Context, userID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			return err
		}
		return s.users.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.auditor, "user", userID, audit.ActionDelete, nil)
	logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, userID id.ID) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

// ListUsers lists all users.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.users.List(ctx)
}

// EnsureAdmin creates the bootstrap admin account when no user with the
// email exists yet. Used at startup so a fresh installation is usable.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		return nil
	}
	_, err = s.CreateUser(ctx, CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     RoleAdmin,
	})
	return err
}
