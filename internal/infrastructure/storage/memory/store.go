// Package memory provides an in-memory implementation of the storage
// layer. It backs service tests and small single-node deployments where
// PostgreSQL is not available.
//
// Transactions take a store-wide lock and snapshot all state up front, so
// a failed transaction rolls everything back. Coarser than the row-level
// locking of the PostgreSQL implementation, but it honors the same
// contract: mutations of the same medicine are serialized and ledger
// appends commit together with their stock updates.
package memory

import (
	"context"
	"sync"

	"pharmastock/internal/core/id"
	"pharmastock/internal/core/tx"
	"pharmastock/internal/domain/audit"
	"pharmastock/internal/domain/auth"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/domain/catalogs/supplier"
	"pharmastock/internal/domain/documents/purchase"
	"pharmastock/internal/domain/documents/sale"
)

// Store holds all in-memory state.
type Store struct {
	mu sync.Mutex

	medicines map[id.ID]*medicine.Medicine
	suppliers map[id.ID]*supplier.Supplier
	users     map[id.ID]*auth.User
	purchases []*purchase.Purchase
	sales     []*sale.Sale
	auditLog  []audit.Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		medicines: make(map[id.ID]*medicine.Medicine),
		suppliers: make(map[id.ID]*supplier.Supplier),
		users:     make(map[id.ID]*auth.User),
	}
}

// txMarker marks a context as running inside a store transaction.
type txMarker struct{}

func inTx(ctx context.Context) bool {
	return ctx.Value(txMarker{}) != nil
}

// lock acquires the store lock unless the context already runs inside a
// transaction, which holds the lock for its whole duration.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// snapshot captures the full store state for rollback.
type snapshot struct {
	medicines map[id.ID]*medicine.Medicine
	suppliers map[id.ID]*supplier.Supplier
	users     map[id.ID]*auth.User
	purchases []*purchase.Purchase
	sales     []*sale.Sale
	auditLog  []audit.Entry
}

func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		medicines: make(map[id.ID]*medicine.Medicine, len(s.medicines)),
		suppliers: make(map[id.ID]*supplier.Supplier, len(s.suppliers)),
		users:     make(map[id.ID]*auth.User, len(s.users)),
		purchases: make([]*purchase.Purchase, len(s.purchases)),
		sales:     make([]*sale.Sale, len(s.sales)),
		auditLog:  make([]audit.Entry, len(s.auditLog)),
	}
	for k, v := range s.medicines {
		cp := *v
		snap.medicines[k] = &cp
	}
	for k, v := range s.suppliers {
		cp := *v
		snap.suppliers[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		snap.users[k] = &cp
	}
	copy(snap.purchases, s.purchases)
	copy(snap.sales, s.sales)
	copy(snap.auditLog, s.auditLog)
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.medicines = snap.medicines
	s.suppliers = snap.suppliers
	s.users = snap.users
	s.purchases = snap.purchases
	s.sales = snap.sales
	s.auditLog = snap.auditLog
}

// TxManager implements tx.ReadOnlyManager over the store.
type TxManager struct {
	store *Store
}

var _ tx.ReadOnlyManager = (*TxManager)(nil)

// NewTxManager creates a transaction manager for the store.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// RunInTransaction executes fn holding the store lock, rolling back all
// changes if fn fails. Nested calls reuse the outer transaction.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.takeSnapshot()
	txCtx := context.WithValue(ctx, txMarker{}, struct{}{})
	if err := fn(txCtx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// ReadOnly executes fn holding the store lock. Writes made by fn are
// rolled back unconditionally.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.takeSnapshot()
	defer m.store.restore(snap)

	txCtx := context.WithValue(ctx, txMarker{}, struct{}{})
	return fn(txCtx)
}
