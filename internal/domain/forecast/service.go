package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultMaxDays is the forecast horizon exposed to callers.
const DefaultMaxDays = 7

const defaultFetchTimeout = 30 * time.Second

// ErrDayUnavailable is returned when the requested day is outside the forecast.
var ErrDayUnavailable = errors.New("forecast day unavailable")

// Service selects a single forecast day, caching provider results per location.
type Service struct {
	cfg      Config
	provider Provider
	cache    Cache
	group    singleflight.Group
	logger   *slog.Logger
}

// NewService wires up the forecast domain.
func NewService(cfg Config, provider Provider, cache Cache, logger *slog.Logger) *Service {
	if cfg.MaxDays <= 0 {
		cfg.MaxDays = DefaultMaxDays
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	return &Service{
		cfg:      cfg,
		provider: provider,
		cache:    cache,
		logger:   logger.With("component", "forecast.service"),
	}
}

// Day returns the forecast for the 0-based day index.
func (s *Service) Day(ctx context.Context, location string, index int) (Day, error) {
	days, err := s.Daily(ctx, location)
	if err != nil {
		return Day{}, err
	}
	if index < 0 || index >= len(days) {
		return Day{}, fmt.Errorf("%w: index %d of %d", ErrDayUnavailable, index, len(days))
	}
	return days[index], nil
}

// Daily returns up to MaxDays forecasts for location.
func (s *Service) Daily(ctx context.Context, location string) ([]Day, error) {
	key := cacheKey(location)
	if key == "" {
		return nil, errors.New("location cannot be empty")
	}
	if s.cache != nil {
		days, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("forecast cache read failed", "location", key, "error", err)
		} else if ok {
			return days, nil
		}
	}

	// The shared fetch outlives whichever caller started it; each caller still stops
	// waiting when its own context ends.
	ch := s.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.FetchTimeout)
		defer cancel()
		return s.fetch(fetchCtx, key, location)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch forecast: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("fetch forecast: %w", res.Err)
		}
		days := res.Val.([]Day)
		s.logger.Info("forecast resolved", "location", key, "days", len(days), "shared", res.Shared)
		return days, nil
	}
}

func (s *Service) fetch(ctx context.Context, key, location string) ([]Day, error) {
	days, err := s.provider.Daily(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(days) > s.cfg.MaxDays {
		days = days[:s.cfg.MaxDays]
	}
	if s.cache != nil && len(days) > 0 {
		if err := s.cache.Set(ctx, key, days, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("forecast cache write failed", "location", key, "error", err)
		}
	}
	return days, nil
}

func cacheKey(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), " ")
}
