package memory

import (
	"context"
	"sort"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/domain/catalogs/supplier"
)

// MedicineRepo implements medicine.Repository over the store.
type MedicineRepo struct {
	store *Store
}

// NewMedicineRepo creates a medicine repository.
func NewMedicineRepo(store *Store) *MedicineRepo {
	return &MedicineRepo{store: store}
}

var _ medicine.Repository = (*MedicineRepo)(nil)

func (r *MedicineRepo) Create(ctx context.Context, m *medicine.Medicine) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.suppliers[m.SupplierID]; !ok {
		return apperror.NewNotFound("supplier", m.SupplierID.String())
	}
	cp := *m
	r.store.medicines[m.ID] = &cp
	return nil
}

func (r *MedicineRepo) GetByID(ctx context.Context, medicineID id.ID) (*medicine.Medicine, error) {
	unlock := r.store.lock(ctx)
	defer unlock()
	return r.get(medicineID)
}

// GetByIDForUpdate behaves like GetByID: the transaction already holds
// the store-wide lock, which serializes every mutation.
func (r *MedicineRepo) GetByIDForUpdate(ctx context.Context, medicineID id.ID) (*medicine.Medicine, error) {
	unlock := r.store.lock(ctx)
	defer unlock()
	return r.get(medicineID)
}

func (r *MedicineRepo) get(medicineID id.ID) (*medicine.Medicine, error) {
	m, ok := r.store.medicines[medicineID]
	if !ok {
		return nil, apperror.NewNotFound("medicine", medicineID.String())
	}
	cp := *m
	if s, ok := r.store.suppliers[m.SupplierID]; ok {
		cp.SupplierName = s.Name
	}
	return &cp, nil
}

func (r *MedicineRepo) Update(ctx context.Context, m *medicine.Medicine) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	current, ok := r.store.medicines[m.ID]
	if !ok {
		return apperror.NewNotFound("medicine", m.ID.String())
	}
	if current.Version != m.Version {
		return apperror.NewWriteConflict("medicine", m.ID.String())
	}
	if _, ok := r.store.suppliers[m.SupplierID]; !ok {
		return apperror.NewNotFound("supplier", m.SupplierID.String())
	}

	cp := *m
	cp.Version = m.Version + 1
	r.store.medicines[m.ID] = &cp
	m.SetVersion(cp.Version)
	return nil
}

func (r *MedicineRepo) Delete(ctx context.Context, medicineID id.ID) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.medicines[medicineID]; !ok {
		return apperror.NewNotFound("medicine", medicineID.String())
	}
	for _, p := range r.store.purchases {
		if p.MedicineID == medicineID {
			return apperror.NewValidation("medicine has ledger history and cannot be deleted").
				WithDetail("medicine_id", medicineID.String())
		}
	}
	for _, s := range r.store.sales {
		if s.MedicineID == medicineID {
			return apperror.NewValidation("medicine has ledger history and cannot be deleted").
				WithDetail("medicine_id", medicineID.String())
		}
	}
	delete(r.store.medicines, medicineID)
	return nil
}

func (r *MedicineRepo) List(ctx context.Context) ([]*medicine.Medicine, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	items := make([]*medicine.Medicine, 0, len(r.store.medicines))
	for _, m := range r.store.medicines {
		cp := *m
		if s, ok := r.store.suppliers[m.SupplierID]; ok {
			cp.SupplierName = s.Name
		}
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// SupplierRepo implements supplier.Repository over the store.
type SupplierRepo struct {
	store *Store
}

// NewSupplierRepo creates a supplier repository.
func NewSupplierRepo(store *Store) *SupplierRepo {
	return &SupplierRepo{store: store}
}

var _ supplier.Repository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(ctx context.Context, s *supplier.Supplier) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	cp := *s
	r.store.suppliers[s.ID] = &cp
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	s, ok := r.store.suppliers[supplierID]
	if !ok {
		return nil, apperror.NewNotFound("supplier", supplierID.String())
	}
	cp := *s
	return &cp, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *supplier.Supplier) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	current, ok := r.store.suppliers[s.ID]
	if !ok {
		return apperror.NewNotFound("supplier", s.ID.String())
	}
	if current.Version != s.Version {
		return apperror.NewWriteConflict("supplier", s.ID.String())
	}

	cp := *s
	cp.Version = s.Version + 1
	r.store.suppliers[s.ID] = &cp
	s.SetVersion(cp.Version)
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, supplierID id.ID) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.suppliers[supplierID]; !ok {
		return apperror.NewNotFound("supplier", supplierID.String())
	}
	for _, m := range r.store.medicines {
		if m.SupplierID == supplierID {
			return apperror.NewValidation("supplier is referenced by medicines and cannot be deleted").
				WithDetail("supplier_id", supplierID.String())
		}
	}
	delete(r.store.suppliers, supplierID)
	return nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*supplier.Supplier, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	items := make([]*supplier.Supplier, 0, len(r.store.suppliers))
	for _, s := range r.store.suppliers {
		cp := *s
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}
