package purchase

import (
	"context"
	"time"
)

// Repository defines persistence operations for the purchase ledger.
// Entries are append-only: no update or delete is exposed.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error

	List(ctx context.Context) ([]*Purchase, error)

	// ListByPeriod returns purchases with from <= purchasedAt <= to,
	// inclusive on both ends.
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*Purchase, error)
}
