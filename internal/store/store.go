package store

import (
	"context"

	"github.com/ugaemi/divecatch-server/internal/record"
)

// RecordStore defines the interface for persistent chase results.
type RecordStore interface {
	// Save inserts a finished session record.
	Save(ctx context.Context, rec *record.Record) error
	// FindByID looks up a record by ID. Returns nil, nil when absent.
	FindByID(ctx context.Context, id string) (*record.Record, error)
	// FindBySession looks up the record of a session. Returns nil, nil when absent.
	FindBySession(ctx context.Context, sessionID string) (*record.Record, error)
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*record.Record, error)
	// Close releases resources.
	Close() error
}
