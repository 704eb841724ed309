package storage

import (
	"context"
	"errors"
)

// ErrNoRecord is returned by Read when no record exists for the given key.
// Callers treat this as "first run" rather than a failure.
var ErrNoRecord = errors.New("record not found")

// RecordStore defines the interface for durable keyed-record persistence.
// Implementations must keep records independent: a write to one key must
// not require rewriting any other key.
type RecordStore interface {
	// Read returns the payload stored under key.
	// Returns ErrNoRecord if the key has never been written.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the payload stored under key. The write must be
	// atomic: a reader never observes a partially written record.
	Write(ctx context.Context, key string, data []byte) error
}
