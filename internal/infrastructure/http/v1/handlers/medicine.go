package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/infrastructure/http/v1/dto"
)

// MedicineHandler serves medicine catalog endpoints.
type MedicineHandler struct {
	*BaseHandler
	service *medicine.Service
}

// NewMedicineHandler creates a new medicine handler.
func NewMedicineHandler(base *BaseHandler, service *medicine.Service) *MedicineHandler {
	return &MedicineHandler{BaseHandler: base, service: service}
}

// Create handles POST /medicines. New medicines start with zero stock;
// quantity arrives only through purchases.
func (h *MedicineHandler) Create(c *gin.Context) {
	var req dto.MedicineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, ok := h.fromRequest(c, &req)
	if !ok {
		return
	}

	if err := h.service.Create(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, m.ID.String())
}

// Get handles GET /medicines/:id.
func (h *MedicineHandler) Get(c *gin.Context) {
	medicineID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), medicineID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, m)
}

// Update handles PUT /medicines/:id. The stored quantity is preserved
// regardless of the payload.
func (h *MedicineHandler) Update(c *gin.Context) {
	medicineID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.MedicineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, ok := h.fromRequest(c, &req)
	if !ok {
		return
	}
	m.ID = medicineID

	if err := h.service.Update(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, m)
}

// Delete handles DELETE /medicines/:id.
func (h *MedicineHandler) Delete(c *gin.Context) {
	medicineID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), medicineID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /medicines.
func (h *MedicineHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *MedicineHandler) fromRequest(c *gin.Context, req *dto.MedicineRequest) (*medicine.Medicine, bool) {
	supplierID, err := parseIDValue(req.SupplierID, "supplierId")
	if err != nil {
		h.Error(c, err)
		return nil, false
	}

	cost, selling, err := req.Prices()
	if err != nil {
		h.Error(c, err)
		return nil, false
	}

	expiry, err := req.Expiry()
	if err != nil {
		h.Error(c, err)
		return nil, false
	}

	m := medicine.New(req.Name, req.Category, supplierID)
	m.CostPrice = cost
	m.SellingPrice = selling
	m.ExpiryDate = expiry
	m.ReorderLevel = req.ReorderLevel
	return m, true
}
