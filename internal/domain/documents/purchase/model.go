// Package purchase provides the Purchase ledger document.
// A purchase records incoming stock from a supplier and strictly increases
// the referenced medicine's on-hand quantity.
package purchase

import (
	"context"
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/entity"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/types"
)

// Purchase is an append-only stock-in ledger entry.
type Purchase struct {
	entity.LedgerEntry

	MedicineID id.ID `db:"medicine_id" json:"medicineId"`
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Quantity purchased; always > 0.
	Quantity int `db:"quantity" json:"quantity"`

	// TotalCost is stored verbatim as supplied by the caller.
	TotalCost types.Money `db:"total_cost" json:"totalCost"`

	// PurchasedAt defaults to processing time when not supplied.
	PurchasedAt time.Time `db:"purchased_at" json:"purchasedAt"`

	// Display names resolved from references, not stored on the ledger row.
	MedicineName string `db:"medicine_name" json:"medicineName,omitempty"`
	SupplierName string `db:"supplier_name" json:"supplierName,omitempty"`
}

// New creates a purchase ledger entry.
func New(medicineID, supplierID id.ID, quantity int, totalCost types.Money, purchasedAt time.Time) *Purchase {
	return &Purchase{
		LedgerEntry: entity.NewLedgerEntry(),
		MedicineID:  medicineID,
		SupplierID:  supplierID,
		Quantity:    quantity,
		TotalCost:   totalCost,
		PurchasedAt: purchasedAt,
	}
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if id.IsNil(p.MedicineID) {
		return apperror.NewValidation("medicine is required").
			WithDetail("field", "medicineId")
	}
	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}
	if p.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if p.TotalCost.IsNegative() {
		return apperror.NewValidation("total cost must not be negative").
			WithDetail("field", "totalCost")
	}
	return nil
}
