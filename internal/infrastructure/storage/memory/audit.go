package memory

import (
	"context"

	"pharmastock/internal/core/id"
	"pharmastock/internal/domain/audit"
)

// AuditRecorder implements audit.Recorder over the store.
type AuditRecorder struct {
	store *Store
}

// NewAuditRecorder creates an audit recorder.
func NewAuditRecorder(store *Store) *AuditRecorder {
	return &AuditRecorder{store: store}
}

var _ audit.Recorder = (*AuditRecorder)(nil)

func (r *AuditRecorder) Record(ctx context.Context, entry audit.Entry) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	r.store.auditLog = append(r.store.auditLog, entry)
	return nil
}

// History returns the most recent entries for an entity, newest first.
func (r *AuditRecorder) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]audit.Entry, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var entries []audit.Entry
	for i := len(r.store.auditLog) - 1; i >= 0 && len(entries) < limit; i-- {
		e := r.store.auditLog[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
