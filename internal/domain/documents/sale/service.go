package sale

import (
	"context"
	"fmt"
	"time"

	"pharmastock/internal/core/apperror"
	appctx "pharmastock/internal/core/context"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/tx"
	"pharmastock/internal/core/types"
	"pharmastock/internal/domain/audit"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/pkg/logger"
)

// Service records sales: availability check, price snapshot, stock decrement
// and ledger append as one atomic unit.
type Service struct {
	repo      Repository
	medicines medicine.Repository
	txManager tx.Manager
	auditor   audit.Recorder // optional
}

// NewService creates a new sale service.
func NewService(repo Repository, medicines medicine.Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		medicines: medicines,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create records a sale of the given quantity for the acting user.
//
// The medicine row is locked for the duration of the transaction, so two
// concurrent sales of the same medicine cannot both pass the availability
// check and oversell; sales of different medicines run in parallel.
// On any failure no state changes: the ledger entry and the quantity
// decrement commit together or not at all.
func (s *Service) Create(ctx context.Context, medicineID id.ID, quantity int) (*Sale, error) {
	user := appctx.GetUser(ctx)
	if user == nil {
		return nil, apperror.NewUnauthorized("acting user is required")
	}
	userID, err := id.Parse(user.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid acting user id")
	}

	if quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	var doc *Sale
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		med, err := s.medicines.GetByIDForUpdate(ctx, medicineID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("medicine", medicineID.String())
			}
			return err
		}

		if med.Quantity < quantity {
			return apperror.NewInsufficientStock(med.ID.String(), quantity, med.Quantity)
		}

		// Snapshot prices before mutating anything. All arithmetic stays
		// in exact decimals; no float64 intermediate.
		totalAmount := types.MulInt(med.SellingPrice, quantity)
		costAmount := types.MulInt(med.CostPrice, quantity)
		profit := totalAmount.Sub(costAmount)

		doc = New(medicineID, userID, quantity, totalAmount, profit, time.Now().UTC())
		if err := doc.Validate(ctx); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}

		med.Quantity -= quantity
		med.Touch()
		if err := s.medicines.Update(ctx, med); err != nil {
			return fmt.Errorf("apply stock decrease: %w", err)
		}

		doc.MedicineName = med.Name
		doc.UserName = user.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.auditor, "sale", doc.ID, audit.ActionSale, doc)
	logger.Info(ctx, "sale recorded",
		"id", doc.ID,
		"medicine_id", doc.MedicineID,
		"quantity", doc.Quantity,
		"total_amount", doc.TotalAmount,
		"profit", doc.Profit,
	)
	return doc, nil
}

// List retrieves all sales.
func (s *Service) List(ctx context.Context) ([]*Sale, error) {
	return s.repo.List(ctx)
}

// ListByPeriod retrieves sales within [from, to], inclusive.
func (s *Service) ListByPeriod(ctx context.Context, from, to time.Time) ([]*Sale, error) {
	if to.Before(from) {
		return nil, apperror.NewInvalidInput("end of range precedes start").
			WithDetail("start", from).
			WithDetail("end", to)
	}
	return s.repo.ListByPeriod(ctx, from, to)
}
