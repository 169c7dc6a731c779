package historyrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ggyyuubb/wearther/internal/domain/history"
)

// MemoryRepository is an in-memory history.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]history.Record
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]history.Record)}
}

// Insert implements history.Repository.
func (r *MemoryRepository) Insert(_ context.Context, rec history.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.Features = append([]float32(nil), rec.Features...)
	r.records[rec.ID] = rec
	return nil
}

// ListByUser implements history.Repository.
func (r *MemoryRepository) ListByUser(_ context.Context, userID string, limit int) ([]history.Record, error) {
	r.mu.RLock()
	out := make([]history.Record, 0)
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListSameDay implements history.Repository.
func (r *MemoryRepository) ListSameDay(_ context.Context, userID string, month time.Month, day, beforeYear int) ([]history.Record, error) {
	r.mu.RLock()
	out := make([]history.Record, 0)
	for _, rec := range r.records {
		created := rec.CreatedAt.UTC()
		if rec.UserID == userID && created.Month() == month && created.Day() == day && created.Year() < beforeYear {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete implements history.Repository.
func (r *MemoryRepository) Delete(_ context.Context, userID string, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

var _ history.Repository = (*MemoryRepository)(nil)
