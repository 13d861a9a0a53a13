package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps encoded records in a map, so callers never share state
// with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	models      map[string][]byte
}

// NewMemoryStore returns an empty store; call Init before use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Init resets the store to empty.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.models = make(map[string][]byte)
	return nil
}

func (s *MemoryStore) SaveModel(_ context.Context, r ModelRecord) error {
	if r.ID == "" {
		return ErrEmptyID
	}
	payload, err := EncodeModel(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	s.models[r.ID] = payload
	return nil
}

func (s *MemoryStore) GetModel(_ context.Context, id string) (ModelRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return ModelRecord{}, false, ErrNotInitialized
	}
	payload, ok := s.models[id]
	if !ok {
		return ModelRecord{}, false, nil
	}
	r, err := DecodeModel(payload)
	if err != nil {
		return ModelRecord{}, false, fmt.Errorf("decode model %s: %w", id, err)
	}
	return r, true, nil
}

func (s *MemoryStore) ListModels(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	out := make([]Summary, 0, len(s.models))
	for id, payload := range s.models {
		r, err := DecodeModel(payload)
		if err != nil {
			return nil, fmt.Errorf("decode model %s: %w", id, err)
		}
		out = append(out, Summary{ID: r.ID, Dataset: r.Dataset, CreatedAt: r.CreatedAt})
	}
	sortSummaries(out)
	return out, nil
}

func (s *MemoryStore) DeleteModel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	delete(s.models, id)
	return nil
}

// sortSummaries orders by creation time, then ID.
func sortSummaries(out []Summary) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
}
