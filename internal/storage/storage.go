package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no state has been persisted yet.
var ErrNotFound = errors.New("storage: not found")

// Store persists one JSON blob under a fixed namespace. Stores
// rehydrate the whole blob at startup and write it back on every
// mutation, so implementations only need whole-value semantics.
type Store interface {
	Save(ctx context.Context, v any) error
	Load(ctx context.Context, v any) error
	Delete(ctx context.Context) error
}
