// Package supplier provides the Supplier catalog.
// Suppliers are referenced by medicines and purchase ledger entries;
// the data is read-mostly.
package supplier

import (
	"context"
	"regexp"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Supplier represents a medicine supplier.
type Supplier struct {
	entity.Base

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Contact is the primary phone or contact line
	Contact string `db:"contact" json:"contact"`

	// Email is optional
	Email *string `db:"email" json:"email,omitempty"`
}

// New creates a new Supplier.
func New(name, contact string) *Supplier {
	return &Supplier{
		Base:    entity.NewBase(),
		Name:    name,
		Contact: contact,
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if s.Contact == "" {
		return apperror.NewValidation("contact is required").
			WithDetail("field", "contact")
	}
	if s.Email != nil && *s.Email != "" && !emailRE.MatchString(*s.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}
	return nil
}
