// Package sale provides the Sale ledger document.
//
// A sale decrements the referenced medicine's on-hand quantity and snapshots
// the selling and cost prices at processing time: later price edits never
// change a recorded sale's totalAmount or profit.
package sale

import (
	"context"
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/entity"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/types"
)

// Sale is an append-only stock-out ledger entry.
type Sale struct {
	entity.LedgerEntry

	MedicineID id.ID `db:"medicine_id" json:"medicineId"`

	// UserID is the acting identity, passed explicitly via request context.
	UserID id.ID `db:"user_id" json:"userId"`

	// Quantity sold; always > 0.
	Quantity int `db:"quantity" json:"quantity"`

	// TotalAmount = sellingPrice at sale time * quantity.
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Profit = TotalAmount - costPrice at sale time * quantity.
	Profit types.Money `db:"profit" json:"profit"`

	// SoldAt is set at processing time, never client-supplied.
	SoldAt time.Time `db:"sold_at" json:"soldAt"`

	// Display names resolved from references, not stored on the ledger row.
	MedicineName string `db:"medicine_name" json:"medicineName,omitempty"`
	UserName     string `db:"user_name" json:"userName,omitempty"`
}

// New creates a sale ledger entry with the price snapshot already computed.
func New(medicineID, userID id.ID, quantity int, totalAmount, profit types.Money, soldAt time.Time) *Sale {
	return &Sale{
		LedgerEntry: entity.NewLedgerEntry(),
		MedicineID:  medicineID,
		UserID:      userID,
		Quantity:    quantity,
		TotalAmount: totalAmount,
		Profit:      profit,
		SoldAt:      soldAt,
	}
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if id.IsNil(s.MedicineID) {
		return apperror.NewValidation("medicine is required").
			WithDetail("field", "medicineId")
	}
	if id.IsNil(s.UserID) {
		return apperror.NewValidation("acting user is required").
			WithDetail("field", "userId")
	}
	if s.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	return nil
}
