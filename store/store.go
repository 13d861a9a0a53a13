package store

import (
	"context"
	"fmt"
)

// Store persists trained pipelines.
type Store interface {
	Init(ctx context.Context) error
	SaveModel(ctx context.Context, r ModelRecord) error
	GetModel(ctx context.Context, id string) (ModelRecord, bool, error)
	ListModels(ctx context.Context) ([]Summary, error)
	DeleteModel(ctx context.Context, id string) error
}

// Backend names accepted by NewStore.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// NewStore returns an uninitialised store for kind ("" means memory).
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, kind)
	}
}

// CloseIfSupported closes stores that hold resources.
func CloseIfSupported(s Store) error {
	closer, ok := s.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
