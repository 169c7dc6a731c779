package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
)

// Record is one saved recommendation.
type Record struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"userId"`
	Location  string            `json:"location"`
	DayIndex  int               `json:"dayIndex"`
	Weather   forecast.Day      `json:"weather"`
	Candidate stylist.Candidate `json:"candidate"`
	Outfit    stylist.Outfit    `json:"outfit"`
	Score     float64           `json:"score"`
	Comment   string            `json:"comment"`
	Features  []float32         `json:"-"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Repository persists records.
type Repository interface {
	Insert(ctx context.Context, rec Record) error
	// ListByUser returns at most limit records, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)
	// ListSameDay returns every record created on month/day in a year before beforeYear, newest first.
	ListSameDay(ctx context.Context, userID string, month time.Month, day, beforeYear int) ([]Record, error)
	// Delete reports whether a record owned by userID was removed.
	Delete(ctx context.Context, userID string, id uuid.UUID) (bool, error)
}

// Config wires runtime settings for the history service.
type Config struct {
	ListLimit int
}
