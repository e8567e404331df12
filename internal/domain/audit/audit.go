// Package audit provides the audit trail contract.
// Entries are written best-effort after the owning transaction commits;
// a failed audit write never fails the business operation.
package audit

import (
	"context"
	"encoding/json"
	"time"

	appctx "pharmastock/internal/core/context"
	"pharmastock/internal/core/id"
	"pharmastock/pkg/logger"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionPurchase Action = "purchase"
	ActionSale     Action = "sale"
)

// Entry represents a single audit log entry.
type Entry struct {
	ID         id.ID           `db:"id"`
	EntityType string          `db:"entity_type"`
	EntityID   id.ID           `db:"entity_id"`
	Action     Action          `db:"action"`
	UserID     string          `db:"user_id"`
	UserEmail  string          `db:"user_email"`
	Changes    json.RawMessage `db:"changes"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Record builds an entry from the context user and writes it through rec.
// Nil recorder is a no-op; write failures are logged and swallowed.
func Record(ctx context.Context, rec Recorder, entityType string, entityID id.ID, action Action, changes any) {
	if rec == nil {
		return
	}

	entry := Entry{
		ID:         id.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		CreatedAt:  time.Now().UTC(),
	}
	if user := appctx.GetUser(ctx); user != nil {
		entry.UserID = user.UserID
		entry.UserEmail = user.Email
	}
	if changes != nil {
		payload, err := json.Marshal(changes)
		if err != nil {
			logger.Warn(ctx, "audit payload marshal failed", "entity", entityType, "error", err)
		} else {
			entry.Changes = payload
		}
	}

	if err := rec.Record(ctx, entry); err != nil {
		logger.Warn(ctx, "audit write failed",
			"entity", entityType,
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
	}
}
