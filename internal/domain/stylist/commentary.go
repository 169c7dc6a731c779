package stylist

import (
	"context"
	"fmt"
	"strings"
)

const commentaryFallback = "Styling comment unavailable"

// narrate produces the styling comment. It is best effort: on failure it returns the
// fallback text and false.
func (s *service) narrate(ctx context.Context, nc NarrationContext) (comment string, ok bool) {
	ctx, cancel := withTimeout(ctx, s.cfg.CommentaryTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("commentary generation panicked", "panic", fmt.Sprint(r))
			comment, ok = commentaryFallback+" (internal error)", false
		}
	}()

	comment, err := s.deps.Planner.Narrate(ctx, nc)
	if err != nil {
		s.logger.Warn("commentary generation failed", "error", err)
		return commentaryFallback + " (" + err.Error() + ")", false
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		s.logger.Warn("commentary generation returned empty text")
		return commentaryFallback + " (empty response)", false
	}
	return comment, true
}
