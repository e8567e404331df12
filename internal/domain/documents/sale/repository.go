package sale

import (
	"context"
	"time"
)

// Repository defines persistence operations for the sale ledger.
// Entries are append-only: no update or delete is exposed.
type Repository interface {
	Create(ctx context.Context, s *Sale) error

	List(ctx context.Context) ([]*Sale, error)

	// ListByPeriod returns sales with from <= soldAt <= to,
	// inclusive on both ends.
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*Sale, error)
}
