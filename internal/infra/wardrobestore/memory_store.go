package wardrobestore

import (
	"context"
	"sync"

	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

// MemoryStore is an in-memory wardrobe.Store used for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]wardrobe.Record
}

// NewMemoryStore constructs a store backed by memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]wardrobe.Record)}
}

// Add appends records to a user's closet.
func (s *MemoryStore) Add(userID string, records ...wardrobe.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = append(s.records[userID], records...)
}

// ListRecords implements wardrobe.Store.
func (s *MemoryStore) ListRecords(_ context.Context, userID string) ([]wardrobe.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]wardrobe.Record(nil), s.records[userID]...), nil
}

var _ wardrobe.Store = (*MemoryStore)(nil)
