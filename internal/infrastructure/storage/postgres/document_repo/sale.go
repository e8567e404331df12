package document_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/domain/documents/sale"
	"pharmastock/internal/infrastructure/storage/postgres"
)

const saleTable = "doc_sales"

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	tm *postgres.TxManager
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(tm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{tm: tm}
}

var _ sale.Repository = (*SaleRepo)(nil)

func (r *SaleRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *SaleRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(
			"d.id", "d.medicine_id", "d.user_id",
			"d.quantity", "d.total_amount", "d.profit", "d.sold_at",
			"d.created_at",
			"m.name AS medicine_name", "u.name AS user_name",
		).
		From(saleTable + " d").
		LeftJoin("cat_medicines m ON m.id = d.medicine_id").
		LeftJoin("sys_users u ON u.id = d.user_id")
}

// Create appends a sale to the ledger.
func (r *SaleRepo) Create(ctx context.Context, s *sale.Sale) error {
	q := r.builder().
		Insert(saleTable).
		Columns("id", "medicine_id", "user_id", "quantity", "total_amount", "profit", "sold_at", "created_at").
		Values(s.ID, s.MedicineID, s.UserID, s.Quantity, s.TotalAmount, s.Profit, s.SoldAt, s.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewNotFound("medicine or user", s.MedicineID.String())
		}
		return fmt.Errorf("insert %s: %w", saleTable, err)
	}
	return nil
}

// List retrieves all sales, newest first.
func (r *SaleRepo) List(ctx context.Context) ([]*sale.Sale, error) {
	return r.selectMany(ctx, r.baseSelect().OrderBy("d.sold_at DESC"))
}

// ListByPeriod retrieves sales within [from, to], inclusive.
func (r *SaleRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*sale.Sale, error) {
	q := r.baseSelect().
		Where(squirrel.GtOrEq{"d.sold_at": from}).
		Where(squirrel.LtOrEq{"d.sold_at": to}).
		OrderBy("d.sold_at ASC")
	return r.selectMany(ctx, q)
}

func (r *SaleRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*sale.Sale, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*sale.Sale
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return items, nil
}
