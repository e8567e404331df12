package dto

// CreateSupplierRequest creates a supplier.
type CreateSupplierRequest struct {
	Name    string  `json:"name" binding:"required"`
	Contact string  `json:"contact"`
	Email   *string `json:"email"`
}

// UpdateSupplierRequest updates a supplier.
type UpdateSupplierRequest struct {
	Name    string  `json:"name" binding:"required"`
	Contact string  `json:"contact"`
	Email   *string `json:"email"`
}
