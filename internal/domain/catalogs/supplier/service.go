package supplier

import (
	"context"
	"fmt"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/core/tx"
	"pharmastock/pkg/logger"
)

// Service provides business operations for suppliers.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new supplier service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create validates and persists a new supplier.
func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, sup); err != nil {
			return fmt.Errorf("create supplier: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "supplier created", "id", sup.ID, "name", sup.Name)
	return nil
}

// GetByID retrieves a supplier by ID.
func (s *Service) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	sup, err := s.repo.GetByID(ctx, supplierID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("supplier", supplierID.String())
		}
		return nil, err
	}
	return sup, nil
}

// Update validates and persists supplier changes.
func (s *Service) Update(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	sup.Touch()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, sup); err != nil {
			return fmt.Errorf("update supplier: %w", err)
		}
		return nil
	})
}

// Delete removes a supplier.
func (s *Service) Delete(ctx context.Context, supplierID id.ID) error {
	if _, err := s.GetByID(ctx, supplierID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, supplierID)
	})
}

// List retrieves all suppliers.
func (s *Service) List(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}
