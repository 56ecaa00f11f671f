package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
)

// MemoryStore keeps graphs in process memory. It backs the server when
// no Mongo URI is configured and serves as the test double everywhere
// else.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Save stores a deep copy of the graph so later caller mutations cannot
// leak into the store.
func (s *MemoryStore) Save(ctx context.Context, name string, g concept.Graph) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	if err := validateGraphContent(g); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec, exists := s.records[name]
	if !exists {
		rec = Record{Name: name, CreatedAt: now}
	}
	rec.Graph = g.Clone()
	rec.UpdatedAt = now
	s.records[name] = rec
	return nil
}

// Load retrieves a copy of a stored graph.
func (s *MemoryStore) Load(ctx context.Context, name string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeGraphNotFound, "graph not found: %s", name)
	}
	rec.Graph = rec.Graph.Clone()
	return rec, nil
}

// List returns stored names in lexical order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored graph.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[name]; !ok {
		return errors.New(errors.ErrCodeGraphNotFound, "graph not found: %s", name)
	}
	delete(s.records, name)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
