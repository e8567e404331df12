package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmastock/internal/domain/documents/purchase"
	"pharmastock/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves the purchase ledger endpoints.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service}
}

// Create handles POST /purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	medicineID, err := parseIDValue(req.MedicineID, "medicineId")
	if err != nil {
		h.Error(c, err)
		return
	}
	supplierID, err := parseIDValue(req.SupplierID, "supplierId")
	if err != nil {
		h.Error(c, err)
		return
	}
	cost, err := req.Cost()
	if err != nil {
		h.Error(c, err)
		return
	}
	purchasedAt, err := req.Timestamp()
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.Create(c.Request.Context(), purchase.CreateInput{
		MedicineID:  medicineID,
		SupplierID:  supplierID,
		Quantity:    req.Quantity,
		TotalCost:   cost,
		PurchasedAt: purchasedAt,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// List handles GET /purchases. With start/end query parameters the list
// is restricted to that inclusive range.
func (h *PurchaseHandler) List(c *gin.Context) {
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
