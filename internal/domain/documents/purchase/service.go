package purchase

import (
	"context"
	"fmt"
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/tx"
	"pharmastock/internal/core/types"
	"pharmastock/internal/domain/audit"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/domain/catalogs/supplier"
	"pharmastock/pkg/logger"
)

// CreateInput carries the fields of a stock-in request.
type CreateInput struct {
	MedicineID id.ID
	SupplierID id.ID
	Quantity   int
	TotalCost  types.Money

	// PurchasedAt is optional; zero means "now".
	PurchasedAt *time.Time
}

// Service records purchases and applies their stock effect.
type Service struct {
	repo      Repository
	medicines medicine.Repository
	suppliers supplier.Repository
	txManager tx.Manager
	auditor   audit.Recorder // optional
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	medicines medicine.Repository,
	suppliers supplier.Repository,
	txManager tx.Manager,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		medicines: medicines,
		suppliers: suppliers,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create records a purchase and increments the medicine's quantity.
// The ledger append and the quantity update are a single atomic unit:
// either both persist or neither does.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Purchase, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if input.TotalCost.IsNegative() {
		return nil, apperror.NewValidation("total cost must not be negative").
			WithDetail("field", "totalCost")
	}

	purchasedAt := time.Now().UTC()
	if input.PurchasedAt != nil && !input.PurchasedAt.IsZero() {
		purchasedAt = input.PurchasedAt.UTC()
	}

	doc := New(input.MedicineID, input.SupplierID, input.Quantity, input.TotalCost, purchasedAt)
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Lock the medicine row first: mutations of the same medicine
		// are serialized, different medicines proceed in parallel.
		med, err := s.medicines.GetByIDForUpdate(ctx, input.MedicineID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("medicine", input.MedicineID.String())
			}
			return err
		}

		sup, err := s.suppliers.GetByID(ctx, input.SupplierID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("supplier", input.SupplierID.String())
			}
			return err
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		med.Quantity += input.Quantity
		med.Touch()
		if err := s.medicines.Update(ctx, med); err != nil {
			return fmt.Errorf("apply stock increase: %w", err)
		}

		doc.MedicineName = med.Name
		doc.SupplierName = sup.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.auditor, "purchase", doc.ID, audit.ActionPurchase, doc)
	logger.Info(ctx, "purchase recorded",
		"id", doc.ID,
		"medicine_id", doc.MedicineID,
		"quantity", doc.Quantity,
		"total_cost", doc.TotalCost,
	)
	return doc, nil
}

// List retrieves all purchases.
func (s *Service) List(ctx context.Context) ([]*Purchase, error) {
	return s.repo.List(ctx)
}

// ListByPeriod retrieves purchases within [from, to], inclusive.
func (s *Service) ListByPeriod(ctx context.Context, from, to time.Time) ([]*Purchase, error) {
	if to.Before(from) {
		return nil, apperror.NewInvalidInput("end of range precedes start").
			WithDetail("start", from).
			WithDetail("end", to)
	}
	return s.repo.ListByPeriod(ctx, from, to)
}
