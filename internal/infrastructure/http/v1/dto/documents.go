package dto

import (
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/types"
)

// CreatePurchaseRequest records a stock-in.
type CreatePurchaseRequest struct {
	MedicineID string `json:"medicineId" binding:"required"`
	SupplierID string `json:"supplierId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	TotalCost  string `json:"totalCost" binding:"required"`

	// PurchasedAt is optional; omitted means "now".
	PurchasedAt string `json:"purchasedAt"`
}

// Cost parses the total cost as an exact decimal.
func (r *CreatePurchaseRequest) Cost() (types.Money, error) {
	cost, err := types.NewMoneyFromString(r.TotalCost)
	if err != nil {
		return cost, apperror.NewInvalidInput("total cost is not a valid decimal").
			WithDetail("field", "totalCost").
			WithDetail("value", r.TotalCost)
	}
	return cost, nil
}

// Timestamp parses the optional purchase timestamp.
func (r *CreatePurchaseRequest) Timestamp() (*time.Time, error) {
	if r.PurchasedAt == "" {
		return nil, nil
	}
	t, err := ParseDate(r.PurchasedAt, "purchasedAt")
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateSaleRequest records a stock-out. The selling price is never
// client-supplied; it is snapshotted from the catalog at processing time.
type CreateSaleRequest struct {
	MedicineID string `json:"medicineId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
}
