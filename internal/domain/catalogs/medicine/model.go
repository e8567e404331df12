// Package medicine provides the Medicine catalog.
//
// A medicine's on-hand quantity is mutated only by accepted purchase/sale
// ledger entries; direct edits cover the remaining descriptive fields.
package medicine

import (
	"context"
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/entity"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/types"
)

// Medicine represents a stocked pharmacy item.
type Medicine struct {
	entity.Base

	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`

	// CostPrice and SellingPrice are exact decimals with 2 fractional digits.
	CostPrice    types.Money `db:"cost_price" json:"costPrice"`
	SellingPrice types.Money `db:"selling_price" json:"sellingPrice"`

	// Quantity is the current on-hand stock; never negative.
	Quantity int `db:"quantity" json:"quantity"`

	// ExpiryDate is a calendar date (stored at UTC midnight).
	ExpiryDate time.Time `db:"expiry_date" json:"expiryDate"`

	// ReorderLevel is the threshold at or below which stock is LOW.
	ReorderLevel int `db:"reorder_level" json:"reorderLevel"`

	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// SupplierName is resolved by list/get queries, not stored.
	SupplierName string `db:"supplier_name" json:"supplierName,omitempty"`
}

// New creates a new Medicine.
func New(name, category string, supplierID id.ID) *Medicine {
	return &Medicine{
		Base:       entity.NewBase(),
		Name:       name,
		Category:   category,
		SupplierID: supplierID,
	}
}

// Validate implements entity.Validatable.
func (m *Medicine) Validate(ctx context.Context) error {
	if m.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if m.Category == "" {
		return apperror.NewValidation("category is required").
			WithDetail("field", "category")
	}
	if m.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price must not be negative").
			WithDetail("field", "costPrice")
	}
	if m.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling price must not be negative").
			WithDetail("field", "sellingPrice")
	}
	if m.CostPrice.Exponent() < -types.MoneyScale {
		return apperror.NewValidation("cost price has more than 2 fractional digits").
			WithDetail("field", "costPrice")
	}
	if m.SellingPrice.Exponent() < -types.MoneyScale {
		return apperror.NewValidation("selling price has more than 2 fractional digits").
			WithDetail("field", "sellingPrice")
	}
	if m.Quantity < 0 {
		return apperror.NewValidation("quantity must not be negative").
			WithDetail("field", "quantity")
	}
	if m.ReorderLevel < 0 {
		return apperror.NewValidation("reorder level must not be negative").
			WithDetail("field", "reorderLevel")
	}
	if m.ExpiryDate.IsZero() {
		return apperror.NewValidation("expiry date is required").
			WithDetail("field", "expiryDate")
	}
	if id.IsNil(m.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}
	return nil
}
