package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/types"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/domain/catalogs/supplier"
	"pharmastock/internal/domain/documents/purchase"
	"pharmastock/internal/domain/documents/sale"
	"pharmastock/internal/infrastructure/storage/memory"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		reorder  int
		want     StockStatus
	}{
		{"zero quantity", 0, 10, StatusOutOfStock},
		{"zero quantity and zero reorder level", 0, 0, StatusOutOfStock},
		{"below reorder level", 3, 10, StatusLow},
		{"exactly at reorder level", 10, 10, StatusLow},
		{"one above reorder level", 11, 10, StatusNormal},
		{"well stocked", 100, 10, StatusNormal},
		{"positive quantity with zero reorder level", 1, 0, StatusNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusFor(tt.quantity, tt.reorder)
			if got != tt.want {
				t.Errorf("StatusFor(%d, %d) = %s, want %s", tt.quantity, tt.reorder, got, tt.want)
			}
		})
	}
}

type reportsFixture struct {
	store     *memory.Store
	medicines *memory.MedicineRepo
	sales     *memory.SaleRepo
	purchases *memory.PurchaseRepo
	supplier  *supplier.Supplier
	service   *Service
	ctx       context.Context

	ledgerMed *medicine.Medicine
}

// fixedNow is the reference "current time" for expiry window tests.
var fixedNow = time.Date(2026, 8, 30, 14, 45, 0, 0, time.UTC)

func newReportsFixture(t *testing.T) *reportsFixture {
	t.Helper()

	store := memory.NewStore()
	medicines := memory.NewMedicineRepo(store)
	suppliers := memory.NewSupplierRepo(store)
	purchases := memory.NewPurchaseRepo(store)
	sales := memory.NewSaleRepo(store)

	ctx := context.Background()
	sup := supplier.New("Acme Pharma", "+1-555-0100")
	require.NoError(t, suppliers.Create(ctx, sup))

	svc := NewService(medicines, sales, purchases)
	svc.nowFn = func() time.Time { return fixedNow }

	return &reportsFixture{
		store:     store,
		medicines: medicines,
		sales:     sales,
		purchases: purchases,
		supplier:  sup,
		service:   svc,
		ctx:       ctx,
	}
}

func (f *reportsFixture) addMedicine(t *testing.T, name string, quantity, reorder int, expiry time.Time) *medicine.Medicine {
	t.Helper()
	m := medicine.New(name, "General", f.supplier.ID)
	m.CostPrice = types.MustMoney("1.00")
	m.SellingPrice = types.MustMoney("2.00")
	m.Quantity = quantity
	m.ReorderLevel = reorder
	m.ExpiryDate = expiry
	require.NoError(t, f.medicines.Create(f.ctx, m))
	return m
}

func day(offset int) time.Time {
	return time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestStockReport(t *testing.T) {
	f := newReportsFixture(t)
	f.addMedicine(t, "A-Out", 0, 5, day(100))
	f.addMedicine(t, "B-Low", 5, 5, day(100))
	f.addMedicine(t, "C-Normal", 50, 5, day(100))

	items, err := f.service.StockReport(f.ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	statuses := map[string]StockStatus{}
	for _, item := range items {
		statuses[item.Medicine.Name] = item.Status
	}
	assert.Equal(t, StatusOutOfStock, statuses["A-Out"])
	assert.Equal(t, StatusLow, statuses["B-Low"])
	assert.Equal(t, StatusNormal, statuses["C-Normal"])
}

func TestLowStockMedicines(t *testing.T) {
	f := newReportsFixture(t)
	f.addMedicine(t, "Empty", 0, 5, day(100))
	f.addMedicine(t, "AtLevel", 5, 5, day(100))
	f.addMedicine(t, "Stocked", 6, 5, day(100))

	low, err := f.service.LowStockMedicines(f.ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)

	names := []string{low[0].Name, low[1].Name}
	assert.Contains(t, names, "Empty")
	assert.Contains(t, names, "AtLevel")
}

func TestExpiredMedicines(t *testing.T) {
	f := newReportsFixture(t)
	f.addMedicine(t, "Yesterday", 10, 5, day(-1))
	f.addMedicine(t, "Today", 10, 5, day(0))
	f.addMedicine(t, "Tomorrow", 10, 5, day(1))

	expired, err := f.service.ExpiredMedicines(f.ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	// Expiring today is not yet expired.
	assert.Equal(t, "Yesterday", expired[0].Name)
}

func TestExpiringWithin_BothBoundsExclusive(t *testing.T) {
	f := newReportsFixture(t)
	f.addMedicine(t, "Today", 10, 5, day(0))
	f.addMedicine(t, "Tomorrow", 10, 5, day(1))
	f.addMedicine(t, "Day29", 10, 5, day(29))
	f.addMedicine(t, "Day30", 10, 5, day(30))
	f.addMedicine(t, "Day31", 10, 5, day(31))

	expiring, err := f.service.ExpiringWithin(f.ctx, 30)
	require.NoError(t, err)

	names := make([]string, 0, len(expiring))
	for _, m := range expiring {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"Tomorrow", "Day29"}, names)
}

func TestExpiringWithin_InvalidDays(t *testing.T) {
	f := newReportsFixture(t)

	for _, days := range []int{0, -5} {
		_, err := f.service.ExpiringWithin(f.ctx, days)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	}
}

func (f *reportsFixture) ledgerMedicine(t *testing.T) *medicine.Medicine {
	t.Helper()
	if f.ledgerMed == nil {
		f.ledgerMed = f.addMedicine(t, "Ledger Subject", 100, 5, day(365))
	}
	return f.ledgerMed
}

func (f *reportsFixture) addSale(t *testing.T, soldAt time.Time, amount, profit string) {
	t.Helper()
	med := f.ledgerMedicine(t)
	doc := sale.New(med.ID, id.New(), 1, types.MustMoney(amount), types.MustMoney(profit), soldAt)
	require.NoError(t, f.sales.Create(f.ctx, doc))
}

func TestSalesSummary(t *testing.T) {
	f := newReportsFixture(t)
	f.addSale(t, day(-10), "5.00", "2.00")
	f.addSale(t, day(-5), "10.50", "4.25")
	f.addSale(t, day(-1), "3.00", "1.00")

	summary, err := f.service.SalesSummary(f.ctx, day(-5), day(-1))
	require.NoError(t, err)

	// Both range ends are inclusive.
	assert.Equal(t, 2, summary.SalesCount)
	assert.True(t, summary.TotalRevenue.Equal(types.MustMoney("13.50")), "got %s", summary.TotalRevenue)
	assert.True(t, summary.TotalProfit.Equal(types.MustMoney("5.25")), "got %s", summary.TotalProfit)
}

func TestSalesSummary_EmptyRangeYieldsExactZeros(t *testing.T) {
	f := newReportsFixture(t)
	f.addSale(t, day(-30), "5.00", "2.00")

	summary, err := f.service.SalesSummary(f.ctx, day(-10), day(-5))
	require.NoError(t, err)

	assert.Equal(t, 0, summary.SalesCount)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.True(t, summary.TotalProfit.IsZero())
}

func TestSalesSummary_ReversedRange(t *testing.T) {
	f := newReportsFixture(t)

	_, err := f.service.SalesSummary(f.ctx, day(0), day(-1))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestPurchasesSummary(t *testing.T) {
	f := newReportsFixture(t)

	med := f.ledgerMedicine(t)
	mk := func(purchasedAt time.Time, cost string) {
		doc := purchase.New(med.ID, f.supplier.ID, 1, types.MustMoney(cost), purchasedAt)
		require.NoError(t, f.purchases.Create(f.ctx, doc))
	}
	mk(day(-7), "20.00")
	mk(day(-3), "15.75")
	mk(day(1), "99.00")

	summary, err := f.service.PurchasesSummary(f.ctx, day(-7), day(0))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.PurchasesCount)
	assert.True(t, summary.TotalCost.Equal(types.MustMoney("35.75")), "got %s", summary.TotalCost)
}
