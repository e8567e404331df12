package purchase_test

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
	"pharmastock/internal/infrastructure/storage/memory"
)

type purchaseFixture struct {
	medicines *memory.MedicineRepo
	service   *purchase.Service
	medicine  *medicine.Medicine
	supplier  *supplier.Supplier
	ctx       context.Context
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	store := memory.NewStore()
	tm := memory.NewTxManager(store)
	medicines := memory.NewMedicineRepo(store)
	suppliers := memory.NewSupplierRepo(store)
	purchases := memory.NewPurchaseRepo(store)

	ctx := context.Background()

	sup := supplier.New("Acme Pharma", "+1-555-0100")
	require.NoError(t, suppliers.Create(ctx, sup))

	med := medicine.New("Ibuprofen 200mg", "Analgesic", sup.ID)
	med.CostPrice = types.MustMoney("1.20")
	med.SellingPrice = types.MustMoney("2.10")
	med.Quantity = 5
	med.ExpiryDate = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, medicines.Create(ctx, med))

	return &purchaseFixture{
		medicines: medicines,
		service:   purchase.NewService(purchases, medicines, suppliers, tm, nil),
		medicine:  med,
		supplier:  sup,
		ctx:       ctx,
	}
}

func TestCreate_IncrementsStock(t *testing.T) {
	f := newPurchaseFixture(t)

	doc, err := f.service.Create(f.ctx, purchase.CreateInput{
		MedicineID: f.medicine.ID,
		SupplierID: f.supplier.ID,
		Quantity:   20,
		TotalCost:  types.MustMoney("24.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 20, doc.Quantity)
	assert.Equal(t, "Ibuprofen 200mg", doc.MedicineName)
	assert.Equal(t, "Acme Pharma", doc.SupplierName)

	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, med.Quantity)
}

func TestCreate_TotalCostStoredVerbatim(t *testing.T) {
	f := newPurchaseFixture(t)

	// The cost is whatever the caller negotiated, not quantity * unit price.
	doc, err := f.service.Create(f.ctx, purchase.CreateInput{
		MedicineID: f.medicine.ID,
		SupplierID: f.supplier.ID,
		Quantity:   7,
		TotalCost:  types.MustMoney("99.99"),
	})
	require.NoError(t, err)
	assert.True(t, doc.TotalCost.Equal(types.MustMoney("99.99")))

	docs, err := f.service.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].TotalCost.Equal(types.MustMoney("99.99")))
}

func TestCreate_DefaultsPurchasedAtToNow(t *testing.T) {
	f := newPurchaseFixture(t)

	before := time.Now().UTC()
	doc, err := f.service.Create(f.ctx, purchase.CreateInput{
		MedicineID: f.medicine.ID,
		SupplierID: f.supplier.ID,
		Quantity:   1,
		TotalCost:  types.MustMoney("1.20"),
	})
	require.NoError(t, err)

	assert.False(t, doc.PurchasedAt.Before(before))
	assert.False(t, doc.PurchasedAt.After(time.Now().UTC()))
}

func TestCreate_HonorsExplicitPurchasedAt(t *testing.T) {
	f := newPurchaseFixture(t)

	when := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	doc, err := f.service.Create(f.ctx, purchase.CreateInput{
		MedicineID:  f.medicine.ID,
		SupplierID:  f.supplier.ID,
		Quantity:    2,
		TotalCost:   types.MustMoney("2.40"),
		PurchasedAt: &when,
	})
	require.NoError(t, err)
	assert.True(t, doc.PurchasedAt.Equal(when))
}

func TestCreate_Validation(t *testing.T) {
	f := newPurchaseFixture(t)

	tests := []struct {
		name  string
		input purchase.CreateInput
	}{
		{
			name: "zero quantity",
			input: purchase.CreateInput{
				MedicineID: f.medicine.ID,
				SupplierID: f.supplier.ID,
				Quantity:   0,
				TotalCost:  types.MustMoney("1.00"),
			},
		},
		{
			name: "negative quantity",
			input: purchase.CreateInput{
				MedicineID: f.medicine.ID,
				SupplierID: f.supplier.ID,
				Quantity:   -3,
				TotalCost:  types.MustMoney("1.00"),
			},
		},
		{
			name: "negative cost",
			input: purchase.CreateInput{
				MedicineID: f.medicine.ID,
				SupplierID: f.supplier.ID,
				Quantity:   1,
				TotalCost:  types.MustMoney("-1.00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(f.ctx, tt.input)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}

	// No side effects from any rejected input.
	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, med.Quantity)
}

func TestCreate_UnknownMedicine(t *testing.T) {
	f := newPurchaseFixture(t)

	_, err := f.service.Create(f.ctx, purchase.CreateInput{
		MedicineID: id.New(),
		SupplierID: f.supplier.ID,
		Quantity:   1,
		TotalCost:  types.MustMoney("1.00"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_UnknownSupplier(t *testing.T) {
	f := newPurchaseFixture(t)

	_, err := f.service.Create(f.ctx, purchase.CreateInput{
		MedicineID: f.medicine.ID,
		SupplierID: id.New(),
		Quantity:   1,
		TotalCost:  types.MustMoney("1.00"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// The ledger append rolled back with the failed transaction.
	docs, err := f.service.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	med, err := f.medicines.GetByID(f.ctx, f.medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, med.Quantity)
}
