// Package auth provides authentication and user management.
package auth

import (
	"context"
	"regexp"
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/entity"
)

// Roles. Every user carries exactly one.
const (
	RoleAdmin      = "ADMIN"
	RolePharmacist = "PHARMACIST"
	RoleCashier    = "CASHIER"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RolePharmacist, RoleCashier:
		return true
	}
	return false
}

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a system user.
type User struct {
	entity.Base

	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	Active       bool   `db:"active" json:"active"`

	LastLoginAt *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
}

// NewUser creates an active user.
func NewUser(name, email, passwordHash, role string) *User {
	return &User{
		Base:         entity.NewBase(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if u.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if u.Email == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	if !emailRE.MatchString(u.Email) {
		return apperror.NewValidation("email is not valid").
			WithDetail("field", "email")
	}
	if !ValidRole(u.Role) {
		return apperror.NewValidation("unknown role").
			WithDetail("field", "role").
			WithDetail("role", u.Role)
	}
	return nil
}

// CanLogin checks whether the user may authenticate.
func (u *User) CanLogin() error {
	if !u.Active {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}

// RecordLogin stamps a successful authentication.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResult is the outcome of a successful login.
type TokenResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
	User        *User     `json:"user"`
}
