// Package housekeeping runs periodic read-only sweeps over stock data:
// expired and near-expiry medicines and low stock levels are surfaced in
// the logs for operators. Sweeps never modify state.
package housekeeping

import (
	"context"
	"sync/atomic"
	"time"

	"pharmastock/internal/domain/reports"
	"pharmastock/pkg/logger"
)

const (
	// DefaultInterval is once a day, matching the review cadence of the
	// pharmacy staff.
	DefaultInterval = 24 * time.Hour

	// DefaultExpiryHorizonDays is how far ahead the near-expiry sweep looks.
	DefaultExpiryHorizonDays = 30
)

// Sweeper periodically inspects stock and logs findings.
type Sweeper struct {
	reports  *reports.Service
	interval time.Duration
	horizon  int

	running atomic.Bool
}

// NewSweeper creates a sweeper with the given cadence. Non-positive
// values fall back to the defaults.
func NewSweeper(reports *reports.Service, interval time.Duration, horizonDays int) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if horizonDays <= 0 {
		horizonDays = DefaultExpiryHorizonDays
	}
	return &Sweeper{
		reports:  reports,
		interval: interval,
		horizon:  horizonDays,
	}
}

// Run performs a sweep immediately, then on every tick until ctx is
// cancelled. It blocks; start it in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	logger.Info(ctx, "housekeeping sweeper started",
		"interval", s.interval,
		"expiry_horizon_days", s.horizon,
	)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "housekeeping sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs all checks once. If a previous sweep is still in progress
// the call is skipped: slow storage must not pile up overlapping sweeps.
// Individual check failures are logged and do not abort the others.
func (s *Sweeper) Sweep(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		logger.Warn(ctx, "housekeeping sweep skipped, previous sweep still running")
		return
	}
	defer s.running.Store(false)

	started := time.Now()

	s.sweepExpired(ctx)
	s.sweepExpiring(ctx)
	s.sweepLowStock(ctx)

	logger.Info(ctx, "housekeeping sweep finished", "duration", time.Since(started))
}

func (s *Sweeper) sweepExpired(ctx context.Context) {
	meds, err := s.reports.ExpiredMedicines(ctx)
	if err != nil {
		logger.Error(ctx, "expired medicines check failed", "error", err)
		return
	}
	for _, m := range meds {
		logger.Warn(ctx, "medicine expired",
			"medicine_id", m.ID,
			"name", m.Name,
			"expiry_date", m.ExpiryDate.Format("2006-01-02"),
			"quantity", m.Quantity,
		)
	}
	logger.Info(ctx, "expired medicines check done", "count", len(meds))
}

func (s *Sweeper) sweepExpiring(ctx context.Context) {
	meds, err := s.reports.ExpiringWithin(ctx, s.horizon)
	if err != nil {
		logger.Error(ctx, "expiring medicines check failed", "error", err)
		return
	}
	for _, m := range meds {
		logger.Warn(ctx, "medicine expiring soon",
			"medicine_id", m.ID,
			"name", m.Name,
			"expiry_date", m.ExpiryDate.Format("2006-01-02"),
			"quantity", m.Quantity,
		)
	}
	logger.Info(ctx, "expiring medicines check done", "count", len(meds), "horizon_days", s.horizon)
}

func (s *Sweeper) sweepLowStock(ctx context.Context) {
	meds, err := s.reports.LowStockMedicines(ctx)
	if err != nil {
		logger.Error(ctx, "low stock check failed", "error", err)
		return
	}
	for _, m := range meds {
		logger.Warn(ctx, "stock at or below reorder level",
			"medicine_id", m.ID,
			"name", m.Name,
			"quantity", m.Quantity,
			"reorder_level", m.ReorderLevel,
		)
	}
	logger.Info(ctx, "low stock check done", "count", len(meds))
}
