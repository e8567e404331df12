package dto

import (
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/types"
)

// MedicineRequest carries the writable fields of a medicine.
// Prices travel as strings so exact decimal values survive the wire;
// on-hand quantity is absent on purpose: it only moves through the
// purchase and sale ledgers.
type MedicineRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category" binding:"required"`
	CostPrice    string `json:"costPrice" binding:"required"`
	SellingPrice string `json:"sellingPrice" binding:"required"`
	ExpiryDate   string `json:"expiryDate" binding:"required"`
	ReorderLevel int    `json:"reorderLevel"`
	SupplierID   string `json:"supplierId" binding:"required"`
}

// Prices parses both price fields as exact decimals.
func (r *MedicineRequest) Prices() (cost, selling types.Money, err error) {
	cost, err = types.NewMoneyFromString(r.CostPrice)
	if err != nil {
		return cost, selling, apperror.NewInvalidInput("cost price is not a valid decimal").
			WithDetail("field", "costPrice").
			WithDetail("value", r.CostPrice)
	}
	selling, err = types.NewMoneyFromString(r.SellingPrice)
	if err != nil {
		return cost, selling, apperror.NewInvalidInput("selling price is not a valid decimal").
			WithDetail("field", "sellingPrice").
			WithDetail("value", r.SellingPrice)
	}
	return cost, selling, nil
}

// Expiry parses the expiry date.
func (r *MedicineRequest) Expiry() (time.Time, error) {
	return ParseDate(r.ExpiryDate, "expiryDate")
}
