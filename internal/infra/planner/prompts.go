package planner

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

const (
	encodingName               = "cl100k_base"
	defaultWardrobeTokenBudget = 1500
	narrationMaxChars          = 150
)

// TokenCounter reports how many model tokens a text consumes.
type TokenCounter func(text string) int

// NewTokenCounter loads the cl100k_base encoding, falling back to EstimateTokens when the
// encoding cannot be loaded (it is fetched on first use).
func NewTokenCounter(logger *slog.Logger) TokenCounter {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		logger.Warn("token encoding unavailable, using estimate", "encoding", encodingName, "error", err)
		return EstimateTokens
	}
	return func(text string) int {
		return len(enc.Encode(text, nil, nil))
	}
}

// EstimateTokens approximates four runes per token.
func EstimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

// Prompts renders the proposal and narration prompts.
type Prompts struct {
	count  TokenCounter
	budget int
}

// NewPrompts builds a prompt renderer whose wardrobe listing stays under budget tokens.
func NewPrompts(counter TokenCounter, budget int) *Prompts {
	if counter == nil {
		counter = EstimateTokens
	}
	if budget <= 0 {
		budget = defaultWardrobeTokenBudget
	}
	return &Prompts{count: counter, budget: budget}
}

// Proposal returns the system and user messages for candidate generation.
func (p *Prompts) Proposal(pc stylist.ProposalContext) (string, string) {
	count := pc.Count
	if count <= 0 {
		count = stylist.DefaultConfig().CandidateCount
	}

	var sys strings.Builder
	sys.WriteString("You are an AI stylist and a JSON generator. ")
	fmt.Fprintf(&sys, "Using the user's wardrobe and the weather, propose %d top/bottom/outerwear outfit combinations and answer with JSON only.\n\n", count)
	sys.WriteString("Rules:\n")
	sys.WriteString("1. Consider colour, material and overall style harmony for every outfit.\n")
	sys.WriteString("2. Keep the season consistent. When the top and outerwear are warm, prefer long bottoms (never a padded jacket or coat with shorts).\n")
	fmt.Fprintf(&sys, "3. \"top\" must be exactly one of: %s\n", quoteAll(pc.Catalog[wardrobe.SlotTop]))
	fmt.Fprintf(&sys, "4. \"bottom\" must be exactly one of: %s\n", quoteAll(pc.Catalog[wardrobe.SlotBottom]))
	fmt.Fprintf(&sys, "5. \"outerwear\" must be exactly one of: %s (%q means no outerwear and may be chosen depending on the weather)\n",
		quoteAll(pc.Catalog[wardrobe.SlotOuterwear]), wardrobe.NoOuterwear)
	sys.WriteString("\nResponse shape:\n")
	sys.WriteString(`[{"top": "longsleeve", "bottom": "denim", "outerwear": "jumper"}, ...]`)

	var user strings.Builder
	fmt.Fprintf(&user, "Weather: average %.1f°C (min %.1f, max %.1f), %s\n",
		pc.Weather.AvgTemp, pc.Weather.MinTemp, pc.Weather.MaxTemp, pc.Weather.Condition)
	user.WriteString("Wardrobe:\n")
	user.WriteString(p.wardrobeListing(pc.Wardrobe))
	return sys.String(), user.String()
}

// Narration returns the prompt for the final styling comment.
func (p *Prompts) Narration(nc stylist.NarrationContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional stylist. A ranking model picked the outfit below. Check colour matching and style harmony and write a friendly, professional recommendation of at most %d characters.\n\n", narrationMaxChars)
	fmt.Fprintf(&b, "[Score] %.4f\n", nc.Score)
	fmt.Fprintf(&b, "[Weather] average %.1f°C, %s\n", nc.Weather.AvgTemp, nc.Weather.Condition)
	fmt.Fprintf(&b, "[Outfit] top: %s, bottom: %s, outerwear: %s\n", nc.Outfit.Top.Type, nc.Outfit.Bottom.Type, nc.Outfit.Outerwear.Type)
	if len(nc.Advisories) > 0 {
		fmt.Fprintf(&b, "[Advice] %s (mention this advice naturally)\n", strings.Join(nc.Advisories, " "))
	}
	return b.String()
}

type promptItem struct {
	Slot      wardrobe.Slot `json:"slot"`
	Type      string        `json:"type"`
	Color     string        `json:"color"`
	Material  string        `json:"material"`
	LengthFit string        `json:"lengthFit"`
}

// wardrobeListing renders one JSON object per line and stops once the budget is spent.
// The first item is always included.
func (p *Prompts) wardrobeListing(items []wardrobe.Item) string {
	lines := make([]string, 0, len(items))
	used := 0
	for _, it := range items {
		raw, err := json.Marshal(promptItem{
			Slot:      it.Slot,
			Type:      it.Type,
			Color:     it.Color,
			Material:  it.Material,
			LengthFit: it.LengthFit,
		})
		if err != nil {
			continue
		}
		cost := p.count(string(raw)) + 1
		if len(lines) > 0 && used+cost > p.budget {
			break
		}
		used += cost
		lines = append(lines, string(raw))
	}
	return "[\n" + strings.Join(lines, ",\n") + "\n]"
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
