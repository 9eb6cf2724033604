package dao

import (
	"context"
)

// Service is a generic keyed repository. Implementations return ErrNotFound
// from Load and Delete for unknown keys and ErrNilEntity from Save(nil).
type Service[K comparable, T any] interface {
	// Save inserts or replaces the record identified by its key.
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	// List returns every stored record.
	List(ctx context.Context) ([]*T, error)
}
