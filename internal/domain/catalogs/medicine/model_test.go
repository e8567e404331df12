package medicine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/types"
)

func validMedicine() *Medicine {
	m := New("Amoxicillin 250mg", "Antibiotic", id.New())
	m.CostPrice = types.MustMoney("3.50")
	m.SellingPrice = types.MustMoney("5.99")
	m.Quantity = 10
	m.ReorderLevel = 5
	m.ExpiryDate = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	return m
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, validMedicine().Validate(ctx))

	tests := []struct {
		name   string
		mutate func(m *Medicine)
		field  string
	}{
		{"empty name", func(m *Medicine) { m.Name = "" }, "name"},
		{"empty category", func(m *Medicine) { m.Category = "" }, "category"},
		{"negative cost price", func(m *Medicine) { m.CostPrice = types.MustMoney("-0.01") }, "costPrice"},
		{"negative selling price", func(m *Medicine) { m.SellingPrice = types.MustMoney("-1") }, "sellingPrice"},
		{"cost price with 3 fractional digits", func(m *Medicine) { m.CostPrice = types.MustMoney("1.999") }, "costPrice"},
		{"selling price with 3 fractional digits", func(m *Medicine) { m.SellingPrice = types.MustMoney("2.001") }, "sellingPrice"},
		{"negative quantity", func(m *Medicine) { m.Quantity = -1 }, "quantity"},
		{"negative reorder level", func(m *Medicine) { m.ReorderLevel = -1 }, "reorderLevel"},
		{"zero expiry date", func(m *Medicine) { m.ExpiryDate = time.Time{} }, "expiryDate"},
		{"nil supplier", func(m *Medicine) { m.SupplierID = id.Nil() }, "supplierId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMedicine()
			tt.mutate(m)

			err := m.Validate(ctx)
			assert.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			assert.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestValidate_WholePricesAllowed(t *testing.T) {
	m := validMedicine()
	m.CostPrice = types.MustMoney("3")
	m.SellingPrice = types.MustMoney("5.9")
	assert.NoError(t, m.Validate(context.Background()))
}

func TestValidate_ZeroPricesAllowed(t *testing.T) {
	// Free samples exist; zero is not negative.
	m := validMedicine()
	m.CostPrice = types.Zero()
	m.SellingPrice = types.Zero()
	assert.NoError(t, m.Validate(context.Background()))
}
