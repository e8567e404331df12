package auth

import (
	"context"

	"pharmastock/internal/core/id"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error

	GetByID(ctx context.Context, userID id.ID) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail reports whether a user with the email is registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update modifies an existing user with optimistic locking.
	Update(ctx context.Context, u *User) error

	Delete(ctx context.Context, userID id.ID) error

	List(ctx context.Context) ([]*User, error)
}
