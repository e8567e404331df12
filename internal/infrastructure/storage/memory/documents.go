package memory

import (
	"context"
	"sort"
	"time"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/domain/documents/purchase"
	"pharmastock/internal/domain/documents/sale"
)

// PurchaseRepo implements purchase.Repository over the store.
type PurchaseRepo struct {
	store *Store
}

// NewPurchaseRepo creates a purchase repository.
func NewPurchaseRepo(store *Store) *PurchaseRepo {
	return &PurchaseRepo{store: store}
}

var _ purchase.Repository = (*PurchaseRepo)(nil)

func (r *PurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.medicines[p.MedicineID]; !ok {
		return apperror.NewNotFound("medicine", p.MedicineID.String())
	}
	if _, ok := r.store.suppliers[p.SupplierID]; !ok {
		return apperror.NewNotFound("supplier", p.SupplierID.String())
	}
	cp := *p
	r.store.purchases = append(r.store.purchases, &cp)
	return nil
}

func (r *PurchaseRepo) List(ctx context.Context) ([]*purchase.Purchase, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	items := make([]*purchase.Purchase, 0, len(r.store.purchases))
	for _, p := range r.store.purchases {
		items = append(items, r.resolve(p))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PurchasedAt.After(items[j].PurchasedAt) })
	return items, nil
}

func (r *PurchaseRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*purchase.Purchase, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var items []*purchase.Purchase
	for _, p := range r.store.purchases {
		if p.PurchasedAt.Before(from) || p.PurchasedAt.After(to) {
			continue
		}
		items = append(items, r.resolve(p))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PurchasedAt.Before(items[j].PurchasedAt) })
	return items, nil
}

func (r *PurchaseRepo) resolve(p *purchase.Purchase) *purchase.Purchase {
	cp := *p
	if m, ok := r.store.medicines[p.MedicineID]; ok {
		cp.MedicineName = m.Name
	}
	if s, ok := r.store.suppliers[p.SupplierID]; ok {
		cp.SupplierName = s.Name
	}
	return &cp
}

// SaleRepo implements sale.Repository over the store.
type SaleRepo struct {
	store *Store
}

// NewSaleRepo creates a sale repository.
func NewSaleRepo(store *Store) *SaleRepo {
	return &SaleRepo{store: store}
}

var _ sale.Repository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(ctx context.Context, s *sale.Sale) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.medicines[s.MedicineID]; !ok {
		return apperror.NewNotFound("medicine", s.MedicineID.String())
	}
	cp := *s
	r.store.sales = append(r.store.sales, &cp)
	return nil
}

func (r *SaleRepo) List(ctx context.Context) ([]*sale.Sale, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	items := make([]*sale.Sale, 0, len(r.store.sales))
	for _, s := range r.store.sales {
		items = append(items, r.resolve(s))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SoldAt.After(items[j].SoldAt) })
	return items, nil
}

func (r *SaleRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*sale.Sale, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var items []*sale.Sale
	for _, s := range r.store.sales {
		if s.SoldAt.Before(from) || s.SoldAt.After(to) {
			continue
		}
		items = append(items, r.resolve(s))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SoldAt.Before(items[j].SoldAt) })
	return items, nil
}

func (r *SaleRepo) resolve(s *sale.Sale) *sale.Sale {
	cp := *s
	if m, ok := r.store.medicines[s.MedicineID]; ok {
		cp.MedicineName = m.Name
	}
	if u, ok := r.store.users[s.UserID]; ok {
		cp.UserName = u.Name
	}
	return &cp
}
