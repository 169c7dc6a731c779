package forecast

import (
	"context"
	"time"
)

// Day is one daily forecast snapshot. Temperatures are in °C.
type Day struct {
	Date      string  `json:"date"`
	AvgTemp   float64 `json:"avgTemp"`
	MinTemp   float64 `json:"minTemp"`
	MaxTemp   float64 `json:"maxTemp"`
	Condition string  `json:"condition"`
}

// Provider resolves a free-text location into daily forecasts, today first.
type Provider interface {
	Daily(ctx context.Context, location string) ([]Day, error)
}

// Cache keeps recent provider results keyed by normalized location.
type Cache interface {
	Get(ctx context.Context, key string) ([]Day, bool, error)
	Set(ctx context.Context, key string, days []Day, ttl time.Duration) error
}

// Config wires runtime settings for the forecast service.
type Config struct {
	CacheTTL time.Duration
	MaxDays  int
	// FetchTimeout bounds a shared provider fetch, independent of any single caller.
	FetchTimeout time.Duration
}
