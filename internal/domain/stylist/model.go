package stylist

import (
	"context"
	"time"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

// MaxDayIndex is the last day of the 7-day forecast window.
const MaxDayIndex = 6

// Request captures the payload accepted by the recommendation service.
type Request struct {
	UserID   string `json:"userId"`
	Location string `json:"location"`
	DayIndex int    `json:"dayIndex"`
}

// Candidate is one proposed outfit. Outerwear may be wardrobe.NoOuterwear.
type Candidate struct {
	Top       string `json:"top"`
	Bottom    string `json:"bottom"`
	Outerwear string `json:"outerwear"`
}

// ScoredOutfit pairs a candidate with its ranking score.
type ScoredOutfit struct {
	Candidate Candidate `json:"candidate"`
	Score     float64   `json:"score"`
}

// SlotDetail is the resolved wardrobe item for one slot of the winning outfit.
type SlotDetail struct {
	Type      string  `json:"type"`
	Color     string  `json:"color"`
	Material  string  `json:"material"`
	LengthFit string  `json:"lengthFit"`
	ImageRef  *string `json:"imageRef"`
	Available bool    `json:"available"`
}

// Outfit is the winning candidate with per-slot details.
type Outfit struct {
	Top       SlotDetail `json:"top"`
	Bottom    SlotDetail `json:"bottom"`
	Outerwear SlotDetail `json:"outerwear"`
}

// WeatherSnapshot is the forecast day the recommendation was made for.
type WeatherSnapshot struct {
	Location string `json:"location"`
	DayIndex int    `json:"dayIndex"`
	forecast.Day
}

// Result is serialized back to API consumers on success.
type Result struct {
	Status           string          `json:"status"`
	Weather          WeatherSnapshot `json:"weather"`
	Candidate        Candidate       `json:"candidate"`
	Outfit           Outfit          `json:"outfit"`
	Score            float64         `json:"score"`
	Advisories       []string        `json:"advisories"`
	Comment          string          `json:"comment"`
	CommentaryFailed bool            `json:"commentaryFailed"`
	Features         FeatureVector   `json:"-"`
}

// ProposalContext is what the planner sees when proposing candidates.
type ProposalContext struct {
	Weather  forecast.Day
	Wardrobe []wardrobe.Item
	Catalog  wardrobe.Catalog
	Count    int
}

// NarrationContext is what the planner sees when writing the styling comment.
type NarrationContext struct {
	Weather    forecast.Day
	Outfit     Outfit
	Score      float64
	Advisories []string
}

// Planner is the generative capability behind candidate proposal and commentary.
type Planner interface {
	Propose(ctx context.Context, pc ProposalContext) ([]Candidate, error)
	Narrate(ctx context.Context, nc NarrationContext) (string, error)
}

// Scorer maps feature vectors to desirability scores.
type Scorer interface {
	ScoreBatch(vectors [][]float32) ([]float64, error)
}

// ForecastSource resolves one forecast day.
type ForecastSource interface {
	Day(ctx context.Context, location string, index int) (forecast.Day, error)
}

// WardrobeSource loads a normalized wardrobe.
type WardrobeSource interface {
	Ready() bool
	Load(ctx context.Context, userID string) []wardrobe.Item
}

// Dependencies holds the process-wide collaborators shared across requests.
type Dependencies struct {
	Forecasts ForecastSource
	Wardrobe  WardrobeSource
	Planner   Planner
	Scorer    Scorer
}

// FilterRules are the exclusionary weather thresholds.
type FilterRules struct {
	// MaxOuterwearTemp rejects any outerwear above this average temperature.
	MaxOuterwearTemp float64
	// MinExposedTemp rejects exposed bottoms below this average temperature.
	MinExposedTemp float64
	RainIndicators []string
}

// AdvisoryRules are the non-blocking wardrobe-gap thresholds.
type AdvisoryRules struct {
	FreezingTemp float64
	ChillyTemp   float64
	HotTemp      float64
	// HeavyRainIndicators are matched together with "heavy" for the rain purchase advice.
	HeavyRainIndicators []string
}

// Config wires runtime settings for the stylist domain.
type Config struct {
	CandidateCount    int
	Filter            FilterRules
	Advisory          AdvisoryRules
	GenerationTimeout time.Duration
	CommentaryTimeout time.Duration
}

// DefaultConfig returns the documented thresholds.
func DefaultConfig() Config {
	rain := []string{"rain", "shower", "drizzle", "비"}
	return Config{
		CandidateCount: 5,
		Filter: FilterRules{
			MaxOuterwearTemp: 30.0,
			MinExposedTemp:   18.0,
			RainIndicators:   rain,
		},
		Advisory: AdvisoryRules{
			FreezingTemp:        5,
			ChillyTemp:          12,
			HotTemp:             25,
			HeavyRainIndicators: []string{"rain", "비"},
		},
		GenerationTimeout: 30 * time.Second,
		CommentaryTimeout: 20 * time.Second,
	}
}
