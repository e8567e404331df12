// Package entity provides base types shared by all domain entities.
package entity

import (
	"context"
	"time"

	"pharmastock/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains common fields for all stored entities.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// CreatedAt / UpdatedAt audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a Base with generated ID and timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp.
// The version column itself is advanced by the repository on UPDATE.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// SetVersion updates the version number (used by repository after sync).
func (b *Base) SetVersion(v int) {
	b.Version = v
}

// LedgerEntry extends Base for append-only records (purchases, sales).
// Ledger entries are immutable once created: no update or delete operation
// is exposed for them anywhere in the service.
type LedgerEntry struct {
	Base
}

// NewLedgerEntry creates a new ledger entry base.
func NewLedgerEntry() LedgerEntry {
	return LedgerEntry{Base: NewBase()}
}
