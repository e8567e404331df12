package housekeeping

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pharmastock/internal/domain/reports"
	"pharmastock/internal/infrastructure/storage/memory"
)

func newTestSweeper(interval time.Duration, horizonDays int) *Sweeper {
	store := memory.NewStore()
	svc := reports.NewService(
		memory.NewMedicineRepo(store),
		memory.NewSaleRepo(store),
		memory.NewPurchaseRepo(store),
	)
	return NewSweeper(svc, interval, horizonDays)
}

func TestNewSweeper_Defaults(t *testing.T) {
	s := newTestSweeper(0, 0)
	assert.Equal(t, DefaultInterval, s.interval)
	assert.Equal(t, DefaultExpiryHorizonDays, s.horizon)

	s = newTestSweeper(-time.Minute, -3)
	assert.Equal(t, DefaultInterval, s.interval)
	assert.Equal(t, DefaultExpiryHorizonDays, s.horizon)

	s = newTestSweeper(time.Hour, 7)
	assert.Equal(t, time.Hour, s.interval)
	assert.Equal(t, 7, s.horizon)
}

func TestSweep_ReleasesRunningFlag(t *testing.T) {
	s := newTestSweeper(time.Hour, 30)

	s.Sweep(context.Background())
	assert.False(t, s.running.Load())

	// A second sweep works after the first completes.
	s.Sweep(context.Background())
	assert.False(t, s.running.Load())
}

func TestSweep_SkipsWhileRunning(t *testing.T) {
	s := newTestSweeper(time.Hour, 30)

	// Simulate an in-flight sweep holding the flag.
	s.running.Store(true)

	s.Sweep(context.Background())

	// The skipped call must not clear the in-flight marker.
	assert.True(t, s.running.Load())
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := newTestSweeper(10 * time.Millisecond, 30)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
	assert.False(t, s.running.Load())
}
