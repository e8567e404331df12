package supplier

import (
	"context"

	"pharmastock/internal/core/id"
)

// Repository defines persistence operations for suppliers.
// Implementations live in infrastructure/storage.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error

	// GetByID retrieves a supplier; missing id yields apperror NOT_FOUND.
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)

	// Update modifies an existing supplier with optimistic locking.
	Update(ctx context.Context, s *Supplier) error

	Delete(ctx context.Context, supplierID id.ID) error

	List(ctx context.Context) ([]*Supplier, error)
}
