package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/pkg/metrics"
)

// BreakerConfig tunes the circuit around generative calls.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerConfig opens after 60% failures over at least 5 calls and probes again after a minute.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "planner",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

type breakerPlanner struct {
	next   stylist.Planner
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

// WithBreaker guards both planner operations with one circuit breaker.
func WithBreaker(next stylist.Planner, cfg BreakerConfig, logger *slog.Logger) stylist.Planner {
	if cfg.Name == "" {
		cfg.Name = DefaultBreakerConfig().Name
	}
	logger = logger.With("component", "planner.breaker", "breaker", cfg.Name)
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return &breakerPlanner{next: next, cb: cb, logger: logger}
}

func (b *breakerPlanner) Propose(ctx context.Context, pc stylist.ProposalContext) ([]stylist.Candidate, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.Propose(ctx, pc)
	})
	b.observe("propose", err)
	if err != nil {
		return nil, err
	}
	candidates, ok := res.([]stylist.Candidate)
	if !ok && res != nil {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return candidates, nil
}

func (b *breakerPlanner) Narrate(ctx context.Context, nc stylist.NarrationContext) (string, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.Narrate(ctx, nc)
	})
	b.observe("narrate", err)
	if err != nil {
		return "", err
	}
	comment, _ := res.(string)
	return comment, nil
}

func (b *breakerPlanner) observe(operation string, err error) {
	metrics.ObservePlannerCall(operation, err)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		b.logger.Warn("planner call rejected", "operation", operation, "error", err)
	}
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
