package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/domain/reports"
	"pharmastock/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// StockReport handles GET /reports/stock.
func (h *ReportsHandler) StockReport(c *gin.Context) {
	items, err := h.service.StockReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// LowStock handles GET /reports/low-stock.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	items, err := h.service.LowStockMedicines(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// Expired handles GET /reports/expired.
func (h *ReportsHandler) Expired(c *gin.Context) {
	items, err := h.service.ExpiredMedicines(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// Expiring handles GET /reports/expiring?days=N.
func (h *ReportsHandler) Expiring(c *gin.Context) {
	daysValue := c.DefaultQuery("days", "30")
	days, err := strconv.Atoi(daysValue)
	if err != nil {
		h.Error(c, apperror.NewInvalidInput("days must be an integer").
			WithDetail("value", daysValue))
		return
	}

	items, err := h.service.ExpiringWithin(c.Request.Context(), days)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// SalesSummary handles GET /reports/sales?start=..&end=..
func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	start, end, err := dto.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.service.SalesSummary(c.Request.Context(), start, end)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// PurchasesSummary handles GET /reports/purchases?start=..&end=..
func (h *ReportsHandler) PurchasesSummary(c *gin.Context) {
	start, end, err := dto.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.service.PurchasesSummary(c.Request.Context(), start, end)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
