// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/domain/catalogs/supplier"
	"pharmastock/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	tm *postgres.TxManager
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(tm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{tm: tm}
}

var _ supplier.Repository = (*SupplierRepo)(nil)

func (r *SupplierRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *SupplierRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select("id", "name", "contact", "email", "version", "created_at", "updated_at").
		From(supplierTable)
}

// Create inserts a new supplier.
func (r *SupplierRepo) Create(ctx context.Context, s *supplier.Supplier) error {
	q := r.builder().
		Insert(supplierTable).
		Columns("id", "name", "contact", "email", "version", "created_at", "updated_at").
		Values(s.ID, s.Name, s.Contact, s.Email, s.Version, s.CreatedAt, s.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", supplierTable, err)
	}
	return nil
}

// GetByID retrieves a supplier by id.
func (r *SupplierRepo) GetByID(ctx context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": supplierID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s supplier.Supplier
	if err := pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("supplier", supplierID.String())
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update modifies a supplier with optimistic locking.
func (r *SupplierRepo) Update(ctx context.Context, s *supplier.Supplier) error {
	q := r.builder().
		Update(supplierTable).
		Set("name", s.Name).
		Set("contact", s.Contact).
		Set("email", s.Email).
		Set("updated_at", s.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": s.ID}).
		Where(squirrel.Eq{"version": s.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", supplierTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewWriteConflict("supplier", s.ID.String())
	}
	s.SetVersion(s.Version + 1)
	return nil
}

// Delete removes a supplier. Referenced suppliers cannot be removed.
func (r *SupplierRepo) Delete(ctx context.Context, supplierID id.ID) error {
	q := r.builder().
		Delete(supplierTable).
		Where(squirrel.Eq{"id": supplierID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewValidation("supplier is referenced by medicines and cannot be deleted").
				WithDetail("supplier_id", supplierID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete %s: %w", supplierTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("supplier", supplierID.String())
	}
	return nil
}

// List retrieves all suppliers ordered by name.
func (r *SupplierRepo) List(ctx context.Context) ([]*supplier.Supplier, error) {
	q := r.baseSelect().OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*supplier.Supplier
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return items, nil
}
