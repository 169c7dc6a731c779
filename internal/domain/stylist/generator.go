package stylist

import (
	"context"
	"fmt"
	"time"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

// generate asks the planner for candidates. Any failure, a planner panic included, yields
// an empty slice.
func (s *service) generate(ctx context.Context, day forecast.Day, items []wardrobe.Item, catalog wardrobe.Catalog) (out []Candidate) {
	ctx, cancel := withTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("candidate generation panicked", "panic", fmt.Sprint(r))
			out = nil
		}
	}()

	proposals, err := s.deps.Planner.Propose(ctx, ProposalContext{
		Weather:  day,
		Wardrobe: items,
		Catalog:  catalog,
		Count:    s.cfg.CandidateCount,
	})
	if err != nil {
		s.logger.Error("candidate generation failed", "error", err)
		return nil
	}
	return constrain(proposals, catalog, s.cfg.CandidateCount)
}

// constrain keeps distinct candidates whose every slot is an allowed catalog value, up to limit.
func constrain(proposals []Candidate, catalog wardrobe.Catalog, limit int) []Candidate {
	out := make([]Candidate, 0, len(proposals))
	seen := make(map[Candidate]struct{}, len(proposals))
	for _, c := range proposals {
		if limit > 0 && len(out) == limit {
			break
		}
		if !catalog.Allows(wardrobe.SlotTop, c.Top) ||
			!catalog.Allows(wardrobe.SlotBottom, c.Bottom) ||
			!catalog.Allows(wardrobe.SlotOuterwear, c.Outerwear) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
