package stylist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
	apperrors "github.com/ggyyuubb/wearther/pkg/errors"
	"github.com/ggyyuubb/wearther/pkg/metrics"
)

// Service exposes outfit recommendation capabilities.
type Service interface {
	Recommend(ctx context.Context, req Request) (Result, error)
	Catalog(ctx context.Context, userID string) (wardrobe.Catalog, error)
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the stylist domain.
func NewService(cfg Config, deps Dependencies, logger *slog.Logger) Service {
	if cfg.CandidateCount <= 0 {
		cfg.CandidateCount = DefaultConfig().CandidateCount
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logger.With("component", "stylist.service"),
		now:    time.Now,
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Result, error) {
	start := s.now()
	res, err := s.recommend(ctx, req)
	metrics.ObserveRecommendation(apperrors.CodeOf(err), s.now().Sub(start))
	return res, err
}

func (s *service) recommend(ctx context.Context, req Request) (Result, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Location = strings.TrimSpace(req.Location)
	if req.UserID == "" {
		return Result{}, apperrors.Wrap(CodeInvalidInput, "user id cannot be empty", nil)
	}
	if req.Location == "" {
		return Result{}, apperrors.Wrap(CodeInvalidInput, "location cannot be empty", nil)
	}
	if req.DayIndex < 0 || req.DayIndex > MaxDayIndex {
		return Result{}, apperrors.Wrap(CodeInvalidInput, fmt.Sprintf("day index must be between 0 and %d", MaxDayIndex), nil)
	}
	if err := s.ready(); err != nil {
		return Result{}, s.fail(StageInit, CodeServiceInit, "recommendation service is not initialized", err)
	}
	logger := s.logger.With("user_id", req.UserID, "location", req.Location, "day_index", req.DayIndex)

	day, err := s.deps.Forecasts.Day(ctx, req.Location, req.DayIndex)
	if err != nil {
		return Result{}, s.fail(StageWeatherResolved, CodeNoForecast, fmt.Sprintf("no forecast available for day %d", req.DayIndex), err)
	}
	logger.Info("weather resolved", "stage", StageWeatherResolved, "avg_temp", day.AvgTemp, "condition", day.Condition)

	items := s.deps.Wardrobe.Load(ctx, req.UserID)
	if len(items) == 0 {
		return Result{}, s.fail(StageWardrobeLoaded, CodeNoWardrobe, "wardrobe data could not be loaded", nil)
	}
	catalog := wardrobe.BuildCatalog(items)

	candidates := s.generate(ctx, day, items, catalog)
	metrics.ObserveCandidates("generated", len(candidates))
	if len(candidates) == 0 {
		return Result{}, s.fail(StageCandidatesGenerated, CodeNoCandidates, "no candidate outfits could be generated", nil)
	}
	logger.Info("candidates generated", "stage", StageCandidatesGenerated, "count", len(candidates))

	filtered := Filter(candidates, day, s.cfg.Filter)
	metrics.ObserveCandidates("filtered", len(filtered))
	if len(filtered) == 0 {
		return Result{}, s.fail(StageCandidatesFiltered, CodeAllFiltered, "no suitable outfit found for this weather", nil)
	}

	vectors := make([][]float32, len(filtered))
	for i, c := range filtered {
		vectors[i] = Encode(day, c)
	}
	scores, err := s.score(vectors)
	if err == nil && len(scores) != len(filtered) {
		err = fmt.Errorf("ranker returned %d scores for %d candidates", len(scores), len(filtered))
	}
	if err != nil {
		return Result{}, s.fail(StageScored, CodeServiceInit, "ranking model failed", err)
	}

	best := SelectBest(scores)
	winner := ScoredOutfit{Candidate: filtered[best], Score: scores[best]}
	logger.Info("winner selected", "stage", StageWinnerSelected, "candidate", winner.Candidate, "score", winner.Score, "scored", len(scores))

	outfit := resolveOutfit(winner.Candidate, items)
	advisories := Advise(day, catalog, outfit, s.cfg.Advisory)

	comment, ok := s.narrate(ctx, NarrationContext{
		Weather:    day,
		Outfit:     outfit,
		Score:      winner.Score,
		Advisories: advisories,
	})
	logger.Info("recommendation complete", "stage", StageDone, "advisories", len(advisories), "commentary_ok", ok)

	return Result{
		Status: statusSuccess,
		Weather: WeatherSnapshot{
			Location: req.Location,
			DayIndex: req.DayIndex,
			Day:      day,
		},
		Candidate:        winner.Candidate,
		Outfit:           outfit,
		Score:            winner.Score,
		Advisories:       advisories,
		Comment:          comment,
		CommentaryFailed: !ok,
		Features:         vectors[best],
	}, nil
}

func (s *service) Catalog(ctx context.Context, userID string) (wardrobe.Catalog, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.Wrap(CodeInvalidInput, "user id cannot be empty", nil)
	}
	if s.deps.Wardrobe == nil || !s.deps.Wardrobe.Ready() {
		return nil, apperrors.Wrap(CodeServiceInit, "wardrobe store is not initialized", nil)
	}
	items := s.deps.Wardrobe.Load(ctx, userID)
	if len(items) == 0 {
		return nil, apperrors.Wrap(CodeNoWardrobe, "wardrobe data could not be loaded", nil)
	}
	return wardrobe.BuildCatalog(items), nil
}

func (s *service) score(vectors [][]float32) (scores []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			scores, err = nil, fmt.Errorf("ranker panicked: %v", r)
		}
	}()
	return s.deps.Scorer.ScoreBatch(vectors)
}

func (s *service) ready() error {
	var missing []string
	if s.deps.Forecasts == nil {
		missing = append(missing, "forecast")
	}
	if s.deps.Wardrobe == nil || !s.deps.Wardrobe.Ready() {
		missing = append(missing, "wardrobe store")
	}
	if s.deps.Planner == nil {
		missing = append(missing, "planner")
	}
	if s.deps.Scorer == nil {
		missing = append(missing, "ranking model")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *service) fail(stage Stage, code, message string, err error) error {
	if err != nil {
		s.logger.Warn("recommendation stopped", "stage", stage, "code", code, "error", err)
	} else {
		s.logger.Warn("recommendation stopped", "stage", stage, "code", code)
	}
	return apperrors.Wrap(code, message, err)
}
