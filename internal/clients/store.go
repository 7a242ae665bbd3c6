package clients

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists under a key.
var ErrNotFound = errors.New("client not found")

// Store persists client records by uuid.
type Store interface {
	// Create writes rec under id, replacing any existing record.
	Create(ctx context.Context, id string, rec Record) error
	// Get returns ErrNotFound when id has no record.
	Get(ctx context.Context, id string) (Record, error)
	// Update merges fields into an existing record, or returns ErrNotFound.
	Update(ctx context.Context, id string, fields Record) error
	// Delete succeeds whether or not the record existed.
	Delete(ctx context.Context, id string) error
	// List returns every record with its key in the "id" field.
	List(ctx context.Context) ([]Record, error)
}
