package sale_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmastock/internal/core/apperror"
	appctx "pharmastock/internal/core/context"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/types"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/domain/catalogs/supplier"
	"pharmastock/internal/domain/documents/sale"
	"pharmastock/internal/infrastructure/storage/memory"
)

type saleFixture struct {
	store     *memory.Store
	medicines *memory.MedicineRepo
	service   *sale.Service
	medicine  *medicine.Medicine
	ctx       context.Context
}

func newSaleFixture(t *testing.T, quantity int) *saleFixture {
	t.Helper()

	store := memory.NewStore()
	tm := memory.NewTxManager(store)
	medicines := memory.NewMedicineRepo(store)
	suppliers := memory.NewSupplierRepo(store)
	sales := memory.NewSaleRepo(store)

	ctx := context.Background()

	sup := supplier.New("Acme Pharma", "+1-555-0100")
	require.NoError(t, suppliers.Create(ctx, sup))

	med := medicine.New("Paracetamol 500mg", "Analgesic", sup.ID)
	med.CostPrice = types.MustMoney("2.50")
	med.SellingPrice = types.MustMoney("4.00")
	med.Quantity = quantity
	med.ExpiryDate = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	med.ReorderLevel = 5
	require.NoError(t, medicines.Create(ctx, med))

	userCtx := appctx.WithUser(ctx, &appctx.UserContext{
		UserID: id.New().String(),
		Name:   "Test Cashier",
		Email:  "cashier@pharmacy.test",
		Role:   "CASHIER",
	})

	return &saleFixture{
		store:     store,
		medicines: medicines,
		service:   sale.NewService(sales, medicines, tm, nil),
		medicine:  med,
		ctx:       userCtx,
	}
}

func TestCreate(t *testing.T) {
	f := newSaleFixture(t, 10)

	doc, err := f.service.Create(f.ctx, f.medicine.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, doc.Quantity)
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("12.00")), "got %s", doc.TotalAmount)
	assert.True(t, doc.Profit.Equal(types.MustMoney("4.50")), "got %s", doc.Profit)
	assert.Equal(t, "Paracetamol 500mg", doc.MedicineName)
	assert.Equal(t, "Test Cashier", doc.UserName)
	assert.False(t, doc.SoldAt.IsZero())

	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, med.Quantity)

	docs, err := f.service.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)
}

func TestCreate_SellsOutCompletely(t *testing.T) {
	f := newSaleFixture(t, 4)

	_, err := f.service.Create(f.ctx, f.medicine.ID, 4)
	require.NoError(t, err)

	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, med.Quantity)
}

func TestCreate_InsufficientStock(t *testing.T) {
	f := newSaleFixture(t, 3)

	_, err := f.service.Create(f.ctx, f.medicine.ID, 5)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Insufficient stock. Available: 3", appErr.Message)
	assert.Equal(t, 3, appErr.Details["available"])
	assert.Equal(t, 5, appErr.Details["requested"])

	// Nothing changed: no ledger entry, quantity intact.
	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, med.Quantity)

	docs, err := f.service.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreate_MedicineNotFound(t *testing.T) {
	f := newSaleFixture(t, 10)

	_, err := f.service.Create(f.ctx, id.New(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_NoActingUser(t *testing.T) {
	f := newSaleFixture(t, 10)

	_, err := f.service.Create(context.Background(), f.medicine.ID, 1)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestCreate_InvalidQuantity(t *testing.T) {
	f := newSaleFixture(t, 10)

	for _, qty := range []int{0, -1} {
		_, err := f.service.Create(f.ctx, f.medicine.ID, qty)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}
}

func TestCreate_SnapshotSurvivesPriceChange(t *testing.T) {
	f := newSaleFixture(t, 10)

	doc, err := f.service.Create(f.ctx, f.medicine.ID, 2)
	require.NoError(t, err)
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("8.00")))
	assert.True(t, doc.Profit.Equal(types.MustMoney("3.00")))

	// Raise both prices after the sale.
	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	med.SellingPrice = types.MustMoney("9.99")
	med.CostPrice = types.MustMoney("5.00")
	med.Touch()
	require.NoError(t, f.medicines.Update(f.ctx, med))

	// The recorded sale keeps the prices of its processing time.
	docs, err := f.service.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].TotalAmount.Equal(types.MustMoney("8.00")))
	assert.True(t, docs[0].Profit.Equal(types.MustMoney("3.00")))
}

func TestCreate_ExactDecimalArithmetic(t *testing.T) {
	f := newSaleFixture(t, 100)

	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	med.SellingPrice = types.MustMoney("0.10")
	med.CostPrice = types.MustMoney("0.07")
	med.Touch()
	require.NoError(t, f.medicines.Update(f.ctx, med))

	// 0.10 * 3 must be exactly 0.30, not 0.30000000000000004.
	doc, err := f.service.Create(f.ctx, f.medicine.ID, 3)
	require.NoError(t, err)
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("0.30")), "got %s", doc.TotalAmount)
	assert.True(t, doc.Profit.Equal(types.MustMoney("0.09")), "got %s", doc.Profit)
}

func TestCreate_ConcurrentSalesNeverOversell(t *testing.T) {
	const stock = 10
	const attempts = 25

	f := newSaleFixture(t, stock)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Create(f.ctx, f.medicine.ID, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperror.IsInsufficientStock(err), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, stock, succeeded)

	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, med.Quantity)

	docs, err := f.service.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, docs, stock)
}

func TestListByPeriod_ReversedRange(t *testing.T) {
	f := newSaleFixture(t, 10)

	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err := f.service.ListByPeriod(f.ctx, from, to)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}
