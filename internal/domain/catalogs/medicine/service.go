package medicine

import (
	"context"
	"fmt"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/tx"
	"pharmastock/internal/domain/audit"
	"pharmastock/internal/domain/catalogs/supplier"
	"pharmastock/pkg/logger"
)

// Service provides business operations for the medicine catalog.
type Service struct {
	repo      Repository
	suppliers supplier.Repository
	txManager tx.Manager
	auditor   audit.Recorder // optional
}

// NewService creates a new medicine service.
func NewService(repo Repository, suppliers supplier.Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		suppliers: suppliers,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create validates and persists a new medicine.
// The referenced supplier must exist.
func (s *Service) Create(ctx context.Context, m *Medicine) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.suppliers.GetByID(ctx, m.SupplierID); err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("supplier", m.SupplierID.String())
			}
			return err
		}
		if err := s.repo.Create(ctx, m); err != nil {
			return fmt.Errorf("create medicine: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.auditor, "medicine", m.ID, audit.ActionCreate, m)
	logger.Info(ctx, "medicine created", "id", m.ID, "name", m.Name)
	return nil
}

// GetByID retrieves a medicine by ID.
func (s *Service) GetByID(ctx context.Context, medicineID id.ID) (*Medicine, error) {
	m, err := s.repo.GetByID(ctx, medicineID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("medicine", medicineID.String())
		}
		return nil, err
	}
	return m, nil
}

// Update applies a direct administrative edit.
// Quantity is deliberately NOT written here: stock moves only through
// accepted purchases and sales. The stored quantity is preserved.
func (s *Service) Update(ctx context.Context, m *Medicine) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByIDForUpdate(ctx, m.ID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("medicine", m.ID.String())
			}
			return err
		}

		if m.SupplierID != current.SupplierID {
			if _, err := s.suppliers.GetByID(ctx, m.SupplierID); err != nil {
				if apperror.IsNotFound(err) {
					return apperror.NewNotFound("supplier", m.SupplierID.String())
				}
				return err
			}
		}

		m.Quantity = current.Quantity
		m.Version = current.Version
		m.CreatedAt = current.CreatedAt
		m.Touch()

		if err := s.repo.Update(ctx, m); err != nil {
			return fmt.Errorf("update medicine: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.auditor, "medicine", m.ID, audit.ActionUpdate, m)
	return nil
}

// Delete removes a medicine from the catalog.
// Ledger history handling for removed medicines is a storage concern.
func (s *Service) Delete(ctx context.Context, medicineID id.ID) error {
	m, err := s.GetByID(ctx, medicineID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, medicineID)
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.auditor, "medicine", m.ID, audit.ActionDelete, m)
	logger.Info(ctx, "medicine deleted", "id", m.ID, "name", m.Name)
	return nil
}

// List retrieves all medicines.
func (s *Service) List(ctx context.Context) ([]*Medicine, error) {
	return s.repo.List(ctx)
}
