package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmastock/internal/domain/documents/sale"
	"pharmastock/internal/infrastructure/http/v1/dto"
)

// SaleHandler serves the sale ledger endpoints.
type SaleHandler struct {
	*BaseHandler
	service *sale.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service}
}

// Create handles POST /sales.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	medicineID, err := parseIDValue(req.MedicineID, "medicineId")
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.Create(c.Request.Context(), medicineID, req.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// List handles GET /sales. With start/end query parameters the list is
// restricted to that inclusive range.
func (h *SaleHandler) List(c *gin.Context) {
	startValue, endValue := c.Query("start"), c.Query("end")
	if startValue == "" && endValue == "" {
		items, err := h.service.List(c.Request.Context())
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, dto.NewListResponse(items))
		return
	}

	start, end, err := dto.ParseDateRange(startValue, endValue)
	if err != nil {
		h.Error(c, err)
		return
	}

	items, err := h.service.ListByPeriod(c.Request.Context(), start, end)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}
