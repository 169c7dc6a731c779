package forecastcache

import (
	"context"
	"sync"
	"time"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
)

type entry struct {
	days      []forecast.Day
	expiresAt time.Time
}

// MemoryStore is an in-process forecast cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry), now: time.Now}
}

// Get implements forecast.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) ([]forecast.Day, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return append([]forecast.Day(nil), e.days...), true, nil
}

// Set implements forecast.Cache. A non-positive ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key string, days []forecast.Day, ttl time.Duration) error {
	e := entry{days: append([]forecast.Day(nil), days...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

var _ forecast.Cache = (*MemoryStore)(nil)
