package reports

import (
	"time"

	"pharmastock/internal/core/types"
	"pharmastock/internal/domain/catalogs/medicine"
)

// StockStatus classifies a medicine's on-hand quantity against its
// reorder level.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StatusLow        StockStatus = "LOW"
	StatusNormal     StockStatus = "NORMAL"
)

// StatusFor returns the stock status for the given quantity and reorder
// level. Zero quantity is always OUT_OF_STOCK, even when the reorder
// level is itself zero.
func StatusFor(quantity, reorderLevel int) StockStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= reorderLevel:
		return StatusLow
	default:
		return StatusNormal
	}
}

// StockReportItem is one medicine's row in the stock status report.
type StockReportItem struct {
	Medicine *medicine.Medicine `json:"medicine"`
	Status   StockStatus        `json:"status"`
}

// SalesSummary aggregates sale ledger entries over a date range.
// Totals are exact decimals; an empty range yields exact zeros.
type SalesSummary struct {
	From         time.Time   `json:"from"`
	To           time.Time   `json:"to"`
	SalesCount   int         `json:"salesCount"`
	TotalRevenue types.Money `json:"totalRevenue"`
	TotalProfit  types.Money `json:"totalProfit"`
}

// PurchasesSummary aggregates purchase ledger entries over a date range.
type PurchasesSummary struct {
	From           time.Time   `json:"from"`
	To             time.Time   `json:"to"`
	PurchasesCount int         `json:"purchasesCount"`
	TotalCost      types.Money `json:"totalCost"`
}
