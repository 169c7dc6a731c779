package stylist

import (
	"strings"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

var exposedBottoms = map[string]struct{}{"shorts": {}, "skirt": {}}

// Filter drops candidates that make no sense for the weather, preserving order.
// Rules are checked in order and the first match rejects the candidate.
func Filter(candidates []Candidate, day forecast.Day, rules FilterRules) []Candidate {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if rejectReason(c, day, rules) == "" {
			kept = append(kept, c)
		}
	}
	return kept
}

func rejectReason(c Candidate, day forecast.Day, rules FilterRules) string {
	_, exposed := exposedBottoms[c.Bottom]
	switch {
	case day.AvgTemp > rules.MaxOuterwearTemp && c.Outerwear != wardrobe.NoOuterwear:
		return "outerwear in heat"
	case day.AvgTemp < rules.MinExposedTemp && exposed:
		return "exposed bottom in cold"
	case exposed && isRainy(day.Condition, rules.RainIndicators):
		return "exposed bottom in rain"
	}
	return ""
}

func isRainy(condition string, indicators []string) bool {
	lowered := strings.ToLower(condition)
	for _, ind := range indicators {
		if ind != "" && strings.Contains(lowered, strings.ToLower(ind)) {
			return true
		}
	}
	return false
}
