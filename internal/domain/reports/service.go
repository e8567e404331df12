// Package reports builds read-only views over the catalog and the ledgers:
// stock status, expiry windows and date-range financial summaries.
// Nothing here mutates state.
package reports

import (
	"context"
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/domain/documents/purchase"
	"pharmastock/internal/domain/documents/sale"
)

// Service computes reports from current stock and ledger history.
type Service struct {
	medicines medicine.Repository
	sales     sale.Repository
	purchases purchase.Repository

	// nowFn is replaceable in tests.
	nowFn func() time.Time
}

// NewService creates a new report service.
func NewService(medicines medicine.Repository, sales sale.Repository, purchases purchase.Repository) *Service {
	return &Service{
		medicines: medicines,
		sales:     sales,
		purchases: purchases,
		nowFn:     time.Now,
	}
}

// today returns the current calendar date at UTC midnight.
func (s *Service) today() time.Time {
	now := s.nowFn().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// StockReport classifies every medicine as OUT_OF_STOCK, LOW or NORMAL.
func (s *Service) StockReport(ctx context.Context) ([]StockReportItem, error) {
	meds, err := s.medicines.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]StockReportItem, 0, len(meds))
	for _, m := range meds {
		items = append(items, StockReportItem{
			Medicine: m,
			Status:   StatusFor(m.Quantity, m.ReorderLevel),
		})
	}
	return items, nil
}

// LowStockMedicines returns medicines at or below their reorder level,
// out-of-stock ones included.
func (s *Service) LowStockMedicines(ctx context.Context) ([]*medicine.Medicine, error) {
	meds, err := s.medicines.List(ctx)
	if err != nil {
		return nil, err
	}
	var low []*medicine.Medicine
	for _, m := range meds {
		if m.Quantity <= m.ReorderLevel {
			low = append(low, m)
		}
	}
	return low, nil
}

// ExpiredMedicines returns medicines whose expiry date is before today.
// A medicine expiring today is not yet expired.
func (s *Service) ExpiredMedicines(ctx context.Context) ([]*medicine.Medicine, error) {
	meds, err := s.medicines.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	var expired []*medicine.Medicine
	for _, m := range meds {
		if m.ExpiryDate.Before(today) {
			expired = append(expired, m)
		}
	}
	return expired, nil
}

// ExpiringWithin returns medicines expiring strictly after today and
// strictly before today plus the given number of days. Both bounds are
// exclusive: items expiring today belong to the expired/current view,
// items expiring exactly on the horizon day are not yet in the window.
func (s *Service) ExpiringWithin(ctx context.Context, days int) ([]*medicine.Medicine, error) {
	if days <= 0 {
		return nil, apperror.NewInvalidInput("days must be positive").
			WithDetail("days", days)
	}
	meds, err := s.medicines.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	horizon := today.AddDate(0, 0, days)
	var expiring []*medicine.Medicine
	for _, m := range meds {
		if m.ExpiryDate.After(today) && m.ExpiryDate.Before(horizon) {
			expiring = append(expiring, m)
		}
	}
	return expiring, nil
}

// SalesSummary totals revenue and profit over [from, to], inclusive.
// An empty range yields zero totals, not an error.
func (s *Service) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	if to.Before(from) {
		return nil, apperror.NewInvalidInput("end of range precedes start").
			WithDetail("start", from).
			WithDetail("end", to)
	}
	docs, err := s.sales.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary := &SalesSummary{From: from, To: to}
	for _, d := range docs {
		summary.SalesCount++
		summary.TotalRevenue = summary.TotalRevenue.Add(d.TotalAmount)
		summary.TotalProfit = summary.TotalProfit.Add(d.Profit)
	}
	return summary, nil
}

// PurchasesSummary totals purchase cost over [from, to], inclusive.
func (s *Service) PurchasesSummary(ctx context.Context, from, to time.Time) (*PurchasesSummary, error) {
	if to.Before(from) {
		return nil, apperror.NewInvalidInput("end of range precedes start").
			WithDetail("start", from).
			WithDetail("end", to)
	}
	docs, err := s.purchases.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary := &PurchasesSummary{From: from, To: to}
	for _, d := range docs {
		summary.PurchasesCount++
		summary.TotalCost = summary.TotalCost.Add(d.TotalCost)
	}
	return summary, nil
}
