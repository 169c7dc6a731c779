package stylist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
	apperrors "github.com/ggyyuubb/wearther/pkg/errors"
)

func TestRecommendColdWeatherKeepsCoat(t *testing.T) {
	planner := &stubPlanner{
		proposals: []Candidate{{Top: "longsleeve", Bottom: "denim", Outerwear: "coat"}},
		comment:   "Layer the coat over the longsleeve.",
	}
	scorer := &stubScorer{}
	svc := newServiceUnderTest(
		&stubForecasts{days: []forecast.Day{{Date: "01-05", AvgTemp: 2, MinTemp: -3, MaxTemp: 5, Condition: "snow"}}},
		&stubWardrobe{items: []wardrobe.Item{
			item(wardrobe.SlotTop, "longsleeve", "White"),
			item(wardrobe.SlotBottom, "denim", "Blue"),
			item(wardrobe.SlotOuterwear, "coat", "Camel"),
		}},
		planner,
		scorer,
	)

	res, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul", DayIndex: 0})
	require.NoError(t, err)
	require.Equal(t, "success", res.Status)
	require.Equal(t, Candidate{Top: "longsleeve", Bottom: "denim", Outerwear: "coat"}, res.Candidate)

	require.Len(t, scorer.batches, 1)
	require.Len(t, scorer.batches[0], 1)
	require.InDelta(t, 0.5, scorer.batches[0][0][IdxTemperature], 1e-6)

	require.Equal(t, "coat", res.Outfit.Outerwear.Type)
	require.True(t, res.Outfit.Outerwear.Available)
	require.Equal(t, "Camel", res.Outfit.Outerwear.Color)
	require.Equal(t, "Layer the coat over the longsleeve.", res.Comment)
	require.False(t, res.CommentaryFailed)
	require.Equal(t, "Seoul", res.Weather.Location)
	require.Equal(t, 2.0, res.Weather.AvgTemp)
	require.Len(t, res.Features, Dimension)

	require.Equal(t, 5, planner.lastProposal.Count)
	require.Equal(t, []string{"coat", "none"}, planner.lastProposal.Catalog[wardrobe.SlotOuterwear])
	require.Equal(t, "coat", planner.lastNarration.Outfit.Outerwear.Type)
}

func TestRecommendAdvisesOuterwearPurchaseWhenCold(t *testing.T) {
	svc := newServiceUnderTest(
		&stubForecasts{days: []forecast.Day{{AvgTemp: 5, Condition: "clouds"}}},
		&stubWardrobe{items: []wardrobe.Item{
			item(wardrobe.SlotTop, "longsleeve", "Grey"),
			item(wardrobe.SlotBottom, "denim", "Blue"),
		}},
		&stubPlanner{
			proposals: []Candidate{{Top: "longsleeve", Bottom: "denim", Outerwear: "none"}},
			comment:   "Keep warm.",
		},
		&stubScorer{},
	)

	res, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.NoError(t, err)
	require.Contains(t, res.Advisories, adviceChilly)
	require.Contains(t, res.Advisories[0], "outerwear")
	require.Equal(t, NoItemAvailable, res.Outfit.Outerwear.Type)
	require.False(t, res.Outfit.Outerwear.Available)
}

func TestRecommendNoCandidates(t *testing.T) {
	for name, planner := range map[string]*stubPlanner{
		"planner error":  {proposeErr: errors.New("503 from model api")},
		"empty proposal": {},
		"out of catalog": {proposals: []Candidate{{Top: "tuxedo", Bottom: "denim", Outerwear: "none"}}},
	} {
		t.Run(name, func(t *testing.T) {
			svc := newServiceUnderTest(mildForecast(), defaultWardrobe(), planner, &stubScorer{})

			_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, CodeNoCandidates))
			require.Equal(t, CodeNoCandidates, ErrorResultFrom(err).Code)
		})
	}
}

func TestRecommendCommentaryFailureStillReturnsOutfit(t *testing.T) {
	svc := newServiceUnderTest(
		mildForecast(),
		defaultWardrobe(),
		&stubPlanner{
			proposals:  []Candidate{{Top: "shirt", Bottom: "slacks", Outerwear: "none"}},
			narrateErr: context.DeadlineExceeded,
		},
		&stubScorer{},
	)

	res, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.NoError(t, err)
	require.True(t, res.CommentaryFailed)
	require.Contains(t, res.Comment, commentaryFallback)
	require.Equal(t, "shirt", res.Outfit.Top.Type)
	require.Equal(t, "slacks", res.Outfit.Bottom.Type)
}

func TestRecommendGenerationTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GenerationTimeout = 50 * time.Millisecond
	svc := newServiceWithConfig(cfg, mildForecast(), defaultWardrobe(), &stubPlanner{blockPropose: true}, &stubScorer{})

	start := time.Now()
	_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.True(t, apperrors.IsCode(err, CodeNoCandidates))
	require.Less(t, time.Since(start), time.Second)
}

func TestRecommendCommentaryTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CommentaryTimeout = 50 * time.Millisecond
	planner := &stubPlanner{
		proposals:    []Candidate{{Top: "shirt", Bottom: "slacks", Outerwear: "none"}},
		blockNarrate: true,
	}
	svc := newServiceWithConfig(cfg, mildForecast(), defaultWardrobe(), planner, &stubScorer{})

	start := time.Now()
	res, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)
	require.True(t, res.CommentaryFailed)
	require.Equal(t, commentaryFallback+" ("+context.DeadlineExceeded.Error()+")", res.Comment)
	require.Equal(t, "shirt", res.Outfit.Top.Type)
}

func TestRecommendRecoversCollaboratorPanics(t *testing.T) {
	proposals := []Candidate{{Top: "shirt", Bottom: "slacks", Outerwear: "none"}}

	t.Run("propose", func(t *testing.T) {
		svc := newServiceUnderTest(mildForecast(), defaultWardrobe(), &stubPlanner{panicPropose: true}, &stubScorer{})
		_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
		require.True(t, apperrors.IsCode(err, CodeNoCandidates))
	})

	t.Run("narrate", func(t *testing.T) {
		svc := newServiceUnderTest(mildForecast(), defaultWardrobe(),
			&stubPlanner{proposals: proposals, panicNarrate: true}, &stubScorer{})
		res, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
		require.NoError(t, err)
		require.True(t, res.CommentaryFailed)
		require.Contains(t, res.Comment, commentaryFallback)
	})

	t.Run("score", func(t *testing.T) {
		svc := newServiceUnderTest(mildForecast(), defaultWardrobe(),
			&stubPlanner{proposals: proposals}, &stubScorer{panics: true})
		_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
		require.True(t, apperrors.IsCode(err, CodeServiceInit))
	})
}

func TestRecommendDropsDuplicateProposals(t *testing.T) {
	same := Candidate{Top: "shirt", Bottom: "slacks", Outerwear: "none"}
	other := Candidate{Top: "longsleeve", Bottom: "denim", Outerwear: "blazer"}
	scorer := &stubScorer{}
	svc := newServiceUnderTest(mildForecast(), defaultWardrobe(),
		&stubPlanner{proposals: []Candidate{same, same, same, same, same, other}, comment: "ok"}, scorer)

	_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.NoError(t, err)
	require.Len(t, scorer.batches, 1)
	require.Len(t, scorer.batches[0], 2)
}

func TestRecommendPicksFirstHighestScore(t *testing.T) {
	proposals := []Candidate{
		{Top: "shirt", Bottom: "slacks", Outerwear: "none"},
		{Top: "shirt", Bottom: "denim", Outerwear: "blazer"},
		{Top: "longsleeve", Bottom: "denim", Outerwear: "none"},
	}
	svc := newServiceUnderTest(
		mildForecast(),
		defaultWardrobe(),
		&stubPlanner{proposals: proposals, comment: "ok"},
		&stubScorer{scores: []float64{0.2, 0.9, 0.9}},
	)

	res, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.NoError(t, err)
	require.Equal(t, proposals[1], res.Candidate)
	require.Equal(t, 0.9, res.Score)
}

func TestRecommendAllFiltered(t *testing.T) {
	svc := newServiceUnderTest(
		&stubForecasts{days: []forecast.Day{{AvgTemp: 35, Condition: "clear sky"}}},
		defaultWardrobe(),
		&stubPlanner{proposals: []Candidate{{Top: "shirt", Bottom: "slacks", Outerwear: "blazer"}}},
		&stubScorer{},
	)

	_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.True(t, apperrors.IsCode(err, CodeAllFiltered))
}

func TestRecommendNoForecast(t *testing.T) {
	svc := newServiceUnderTest(mildForecast(), defaultWardrobe(), &stubPlanner{}, &stubScorer{})

	_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul", DayIndex: 4})
	require.True(t, apperrors.IsCode(err, CodeNoForecast))
}

func TestRecommendNoWardrobe(t *testing.T) {
	svc := newServiceUnderTest(mildForecast(), &stubWardrobe{}, &stubPlanner{}, &stubScorer{})

	_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.True(t, apperrors.IsCode(err, CodeNoWardrobe))
}

func TestRecommendServiceInitFailure(t *testing.T) {
	svc := newServiceUnderTest(mildForecast(), defaultWardrobe(), &stubPlanner{}, nil)

	_, err := svc.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.True(t, apperrors.IsCode(err, CodeServiceInit))

	scorerErr := newServiceUnderTest(
		mildForecast(),
		defaultWardrobe(),
		&stubPlanner{proposals: []Candidate{{Top: "shirt", Bottom: "slacks", Outerwear: "none"}}},
		&stubScorer{err: errors.New("input dimension mismatch")},
	)
	_, err = scorerErr.Recommend(context.Background(), Request{UserID: "u1", Location: "Seoul"})
	require.True(t, apperrors.IsCode(err, CodeServiceInit))
}

func TestRecommendInvalidInput(t *testing.T) {
	svc := newServiceUnderTest(mildForecast(), defaultWardrobe(), &stubPlanner{}, &stubScorer{})

	for _, req := range []Request{
		{Location: "Seoul"},
		{UserID: "u1", Location: "  "},
		{UserID: "u1", Location: "Seoul", DayIndex: -1},
		{UserID: "u1", Location: "Seoul", DayIndex: 7},
	} {
		_, err := svc.Recommend(context.Background(), req)
		require.True(t, apperrors.IsCode(err, CodeInvalidInput), "%+v", req)
	}
}

func TestCatalog(t *testing.T) {
	svc := newServiceUnderTest(mildForecast(), defaultWardrobe(), &stubPlanner{}, &stubScorer{})

	catalog, err := svc.Catalog(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"longsleeve", "shirt"}, catalog[wardrobe.SlotTop])
	require.Equal(t, []string{"blazer", "none"}, catalog[wardrobe.SlotOuterwear])
}

func TestErrorResultFromUncodedError(t *testing.T) {
	res := ErrorResultFrom(errors.New("panic recovered"))
	require.Equal(t, "error", res.Status)
	require.Equal(t, CodeServiceInit, res.Code)
	require.Equal(t, "panic recovered", res.Message)
}

func newServiceUnderTest(forecasts ForecastSource, closet WardrobeSource, planner Planner, scorer Scorer) Service {
	return newServiceWithConfig(DefaultConfig(), forecasts, closet, planner, scorer)
}

func newServiceWithConfig(cfg Config, forecasts ForecastSource, closet WardrobeSource, planner Planner, scorer Scorer) Service {
	deps := Dependencies{Forecasts: forecasts, Wardrobe: closet, Planner: planner}
	if scorer != nil {
		deps.Scorer = scorer
	}
	return NewService(cfg, deps, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mildForecast() *stubForecasts {
	return &stubForecasts{days: []forecast.Day{{Date: "05-01", AvgTemp: 20, Condition: "clear sky"}}}
}

func defaultWardrobe() *stubWardrobe {
	return &stubWardrobe{items: []wardrobe.Item{
		item(wardrobe.SlotTop, "shirt", "White"),
		item(wardrobe.SlotTop, "longsleeve", "Navy"),
		item(wardrobe.SlotBottom, "slacks", "Black"),
		item(wardrobe.SlotBottom, "denim", "Blue"),
		item(wardrobe.SlotOuterwear, "blazer", "Grey"),
	}}
}

func item(slot wardrobe.Slot, itemType, color string) wardrobe.Item {
	return wardrobe.Item{Slot: slot, Type: itemType, Color: color, Material: "cotton", LengthFit: "N/A"}
}

type stubForecasts struct {
	days []forecast.Day
}

func (s *stubForecasts) Day(_ context.Context, _ string, index int) (forecast.Day, error) {
	if index < 0 || index >= len(s.days) {
		return forecast.Day{}, forecast.ErrDayUnavailable
	}
	return s.days[index], nil
}

type stubWardrobe struct {
	items []wardrobe.Item
}

func (s *stubWardrobe) Ready() bool { return true }

func (s *stubWardrobe) Load(_ context.Context, _ string) []wardrobe.Item {
	return s.items
}

type stubPlanner struct {
	proposals     []Candidate
	proposeErr    error
	comment       string
	narrateErr    error
	blockPropose  bool
	blockNarrate  bool
	panicPropose  bool
	panicNarrate  bool
	lastProposal  ProposalContext
	lastNarration NarrationContext
}

func (s *stubPlanner) Propose(ctx context.Context, pc ProposalContext) ([]Candidate, error) {
	s.lastProposal = pc
	if s.panicPropose {
		panic("sdk adapter bug")
	}
	if s.blockPropose {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.proposeErr != nil {
		return nil, s.proposeErr
	}
	return s.proposals, nil
}

func (s *stubPlanner) Narrate(ctx context.Context, nc NarrationContext) (string, error) {
	s.lastNarration = nc
	if s.panicNarrate {
		panic("sdk adapter bug")
	}
	if s.blockNarrate {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.narrateErr != nil {
		return "", s.narrateErr
	}
	return s.comment, nil
}

type stubScorer struct {
	scores  []float64
	err     error
	panics  bool
	batches [][][]float32
}

func (s *stubScorer) ScoreBatch(vectors [][]float32) ([]float64, error) {
	s.batches = append(s.batches, vectors)
	if s.panics {
		panic("index out of range")
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.scores != nil {
		return s.scores, nil
	}
	return make([]float64, len(vectors)), nil
}
