package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory store for development, tests and single-shot
// CLI runs. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*Record
	byName map[string]string // name -> id
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]*Record),
		byName: make(map[string]string),
	}
}

// Save inserts or updates a record.
func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *Record
	if id, ok := s.byName[rec.Name]; ok {
		existing = s.byID[id]
	}
	if err := prepare(rec, existing); err != nil {
		return err
	}

	cp := *rec
	s.byID[cp.ID] = &cp
	s.byName[cp.Name] = cp.ID
	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, notFound("id", id)
	}
	cp := *rec
	return &cp, nil
}

// GetByName retrieves a record by name.
func (s *MemoryStore) GetByName(ctx context.Context, name string) (*Record, error) {
	s.mu.RLock()
	id, ok := s.byName[name]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound("name", name)
	}
	return s.Get(ctx, id)
}

// List returns all records sorted by name.
func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.byID))
	for _, rec := range s.byID {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a record by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return notFound("id", id)
	}
	delete(s.byID, id)
	delete(s.byName, rec.Name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
