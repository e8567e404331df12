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
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/infrastructure/storage/postgres"
)

const medicineTable = "cat_medicines"

// MedicineRepo implements medicine.Repository.
type MedicineRepo struct {
	tm *postgres.TxManager
}

// NewMedicineRepo creates a new medicine repository.
func NewMedicineRepo(tm *postgres.TxManager) *MedicineRepo {
	return &MedicineRepo{tm: tm}
}

var _ medicine.Repository = (*MedicineRepo)(nil)

func (r *MedicineRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// baseSelect joins the supplier to resolve its display name.
func (r *MedicineRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(
			"m.id", "m.name", "m.category",
			"m.cost_price", "m.selling_price",
			"m.quantity", "m.expiry_date", "m.reorder_level",
			"m.supplier_id", "s.name AS supplier_name",
			"m.version", "m.created_at", "m.updated_at",
		).
		From(medicineTable + " m").
		LeftJoin(supplierTable + " s ON s.id = m.supplier_id")
}

// Create inserts a new medicine.
func (r *MedicineRepo) Create(ctx context.Context, m *medicine.Medicine) error {
	q := r.builder().
		Insert(medicineTable).
		Columns(
			"id", "name", "category",
			"cost_price", "selling_price",
			"quantity", "expiry_date", "reorder_level",
			"supplier_id", "version", "created_at", "updated_at",
		).
		Values(
			m.ID, m.Name, m.Category,
			m.CostPrice, m.SellingPrice,
			m.Quantity, m.ExpiryDate, m.ReorderLevel,
			m.SupplierID, m.Version, m.CreatedAt, m.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewNotFound("supplier", m.SupplierID.String())
		}
		return fmt.Errorf("insert %s: %w", medicineTable, err)
	}
	return nil
}

// GetByID retrieves a medicine by id.
func (r *MedicineRepo) GetByID(ctx context.Context, medicineID id.ID) (*medicine.Medicine, error) {
	return r.getOne(ctx, medicineID, false)
}

// GetByIDForUpdate retrieves a medicine and locks its row for the current
// transaction. Must be called inside RunInTransaction.
func (r *MedicineRepo) GetByIDForUpdate(ctx context.Context, medicineID id.ID) (*medicine.Medicine, error) {
	return r.getOne(ctx, medicineID, true)
}

func (r *MedicineRepo) getOne(ctx context.Context, medicineID id.ID, forUpdate bool) (*medicine.Medicine, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"m.id": medicineID}).
		Limit(1)
	if forUpdate {
		// Lock only the medicine row, not the joined supplier.
		q = q.Suffix("FOR UPDATE OF m")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var m medicine.Medicine
	if err := pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("medicine", medicineID.String())
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return &m, nil
}

// Update modifies a medicine with optimistic locking.
func (r *MedicineRepo) Update(ctx context.Context, m *medicine.Medicine) error {
	q := r.builder().
		Update(medicineTable).
		Set("name", m.Name).
		Set("category", m.Category).
		Set("cost_price", m.CostPrice).
		Set("selling_price", m.SellingPrice).
		Set("quantity", m.Quantity).
		Set("expiry_date", m.ExpiryDate).
		Set("reorder_level", m.ReorderLevel).
		Set("supplier_id", m.SupplierID).
		Set("updated_at", m.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": m.ID}).
		Where(squirrel.Eq{"version": m.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewNotFound("supplier", m.SupplierID.String())
		}
		return fmt.Errorf("update %s: %w", medicineTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewWriteConflict("medicine", m.ID.String())
	}
	m.SetVersion(m.Version + 1)
	return nil
}

// Delete removes a medicine. Medicines referenced by ledger entries
// cannot be removed.
func (r *MedicineRepo) Delete(ctx context.Context, medicineID id.ID) error {
	q := r.builder().
		Delete(medicineTable).
		Where(squirrel.Eq{"id": medicineID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewValidation("medicine has ledger history and cannot be deleted").
				WithDetail("medicine_id", medicineID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete %s: %w", medicineTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("medicine", medicineID.String())
	}
	return nil
}

// List retrieves all medicines ordered by name.
func (r *MedicineRepo) List(ctx context.Context) ([]*medicine.Medicine, error) {
	q := r.baseSelect().OrderBy("m.name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*medicine.Medicine
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return items, nil
}
