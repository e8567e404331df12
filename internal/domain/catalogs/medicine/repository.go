package medicine

import (
	"context"

	"pharmastock/internal/core/id"
)

// Repository defines persistence operations for medicines.
// Implementations live in infrastructure/storage.
type Repository interface {
	Create(ctx context.Context, m *Medicine) error

	// GetByID retrieves a medicine; missing id yields apperror NOT_FOUND.
	GetByID(ctx context.Context, medicineID id.ID) (*Medicine, error)

	// GetByIDForUpdate retrieves a medicine and acquires the per-medicine
	// write serialization for the current transaction. Every quantity
	// mutation must load the row through this method so that concurrent
	// mutations of the same medicine are serialized while different
	// medicines proceed in parallel.
	GetByIDForUpdate(ctx context.Context, medicineID id.ID) (*Medicine, error)

	// Update modifies an existing medicine with optimistic locking;
	// a version mismatch yields apperror WRITE_CONFLICT.
	Update(ctx context.Context, m *Medicine) error

	Delete(ctx context.Context, medicineID id.ID) error

	List(ctx context.Context) ([]*Medicine, error)
}
