package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

// StaticPlanner is an offline planner. It spreads its proposals evenly across the
// catalog's combinations and writes a templated comment.
type StaticPlanner struct{}

// NewStaticPlanner returns the offline planner.
func NewStaticPlanner() StaticPlanner {
	return StaticPlanner{}
}

// Propose returns up to pc.Count catalog combinations.
func (StaticPlanner) Propose(_ context.Context, pc stylist.ProposalContext) ([]stylist.Candidate, error) {
	tops := pc.Catalog[wardrobe.SlotTop]
	bottoms := pc.Catalog[wardrobe.SlotBottom]
	outers := pc.Catalog[wardrobe.SlotOuterwear]
	if len(outers) == 0 {
		outers = []string{wardrobe.NoOuterwear}
	}
	total := len(tops) * len(bottoms) * len(outers)
	if total == 0 {
		return nil, nil
	}
	count := pc.Count
	if count <= 0 || count > total {
		count = total
	}

	out := make([]stylist.Candidate, 0, count)
	for i := 0; i < count; i++ {
		n := i * total / count
		out = append(out, stylist.Candidate{
			Top:       tops[n/(len(bottoms)*len(outers))],
			Bottom:    bottoms[(n/len(outers))%len(bottoms)],
			Outerwear: outers[n%len(outers)],
		})
	}
	return out, nil
}

// Narrate describes the outfit and repeats the first advisory.
func (StaticPlanner) Narrate(_ context.Context, nc stylist.NarrationContext) (string, error) {
	parts := []string{nc.Outfit.Top.Type, nc.Outfit.Bottom.Type}
	if nc.Outfit.Outerwear.Available {
		parts = append(parts, nc.Outfit.Outerwear.Type)
	}
	comment := fmt.Sprintf("For %.0f°C and %s, wear %s.", nc.Weather.AvgTemp, nc.Weather.Condition, strings.Join(parts, " with "))
	if len(nc.Advisories) > 0 {
		comment += " " + nc.Advisories[0]
	}
	return comment, nil
}

var _ stylist.Planner = StaticPlanner{}
