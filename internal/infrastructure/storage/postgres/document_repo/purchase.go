// Package document_repo provides PostgreSQL implementations for the
// purchase and sale ledgers. Ledger tables are append-only; the repos
// expose no update or delete.
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
	"pharmastock/internal/domain/documents/purchase"
	"pharmastock/internal/infrastructure/storage/postgres"
)

const purchaseTable = "doc_purchases"

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	tm *postgres.TxManager
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(tm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{tm: tm}
}

var _ purchase.Repository = (*PurchaseRepo)(nil)

func (r *PurchaseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *PurchaseRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(
			"p.id", "p.medicine_id", "p.supplier_id",
			"p.quantity", "p.total_cost", "p.purchased_at",
			"p.created_at",
			"m.name AS medicine_name", "s.name AS supplier_name",
		).
		From(purchaseTable + " p").
		LeftJoin("cat_medicines m ON m.id = p.medicine_id").
		LeftJoin("cat_suppliers s ON s.id = p.supplier_id")
}

// Create appends a purchase to the ledger.
func (r *PurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	q := r.builder().
		Insert(purchaseTable).
		Columns("id", "medicine_id", "supplier_id", "quantity", "total_cost", "purchased_at", "created_at").
		Values(p.ID, p.MedicineID, p.SupplierID, p.Quantity, p.TotalCost, p.PurchasedAt, p.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewNotFound("medicine or supplier", p.MedicineID.String())
		}
		return fmt.Errorf("insert %s: %w", purchaseTable, err)
	}
	return nil
}

// List retrieves all purchases, newest first.
func (r *PurchaseRepo) List(ctx context.Context) ([]*purchase.Purchase, error) {
	return r.selectMany(ctx, r.baseSelect().OrderBy("p.purchased_at DESC"))
}

// ListByPeriod retrieves purchases within [from, to], inclusive.
func (r *PurchaseRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*purchase.Purchase, error) {
	q := r.baseSelect().
		Where(squirrel.GtOrEq{"p.purchased_at": from}).
		Where(squirrel.LtOrEq{"p.purchased_at": to}).
		OrderBy("p.purchased_at ASC")
	return r.selectMany(ctx, q)
}

func (r *PurchaseRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*purchase.Purchase, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*purchase.Purchase
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return items, nil
}
