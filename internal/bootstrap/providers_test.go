package bootstrap

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ggyyuubb/wearther/internal/infra/config"
	"github.com/ggyyuubb/wearther/internal/infra/planner"
)

func TestProvideStylistConfig(t *testing.T) {
	cfg := &config.Config{
		Stylist: config.StylistConfig{
			CandidateCount:   3,
			MaxOuterwearTemp: 28,
			MinExposedTemp:   16,
			FreezingTemp:     3,
			ChillyTemp:       10,
			HotTemp:          27,
		},
		LLM: config.LLMConfig{GenerationTimeout: 5 * time.Second},
	}

	got := ProvideStylistConfig(cfg)
	require.Equal(t, 3, got.CandidateCount)
	require.Equal(t, 28.0, got.Filter.MaxOuterwearTemp)
	require.Equal(t, 16.0, got.Filter.MinExposedTemp)
	require.Equal(t, 3.0, got.Advisory.FreezingTemp)
	require.Equal(t, 10.0, got.Advisory.ChillyTemp)
	require.Equal(t, 27.0, got.Advisory.HotTemp)
	require.Equal(t, 5*time.Second, got.GenerationTimeout)
	require.Equal(t, 20*time.Second, got.CommentaryTimeout)
	require.Contains(t, got.Filter.RainIndicators, "rain")
	require.Equal(t, []string{"rain", "비"}, got.Advisory.HeavyRainIndicators)
}

func TestProvideStylistConfigRainOverride(t *testing.T) {
	cfg := &config.Config{Stylist: config.StylistConfig{
		RainIndicators:      []string{"storm"},
		HeavyRainIndicators: []string{"downpour"},
	}}

	got := ProvideStylistConfig(cfg)
	require.Equal(t, []string{"storm"}, got.Filter.RainIndicators)
	require.Equal(t, []string{"downpour"}, got.Advisory.HeavyRainIndicators)
}

func TestProvidePlannerStatic(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderStatic, Breaker: config.BreakerConfig{Enabled: true}}}

	p := ProvidePlanner(cfg, newTestLogger())
	require.IsType(t, planner.StaticPlanner{}, p)
}

func TestProvideForecastSourceWithoutKey(t *testing.T) {
	cfg := &config.Config{}

	require.Nil(t, ProvideForecastSource(cfg, newTestLogger()))
}

func TestProvideScorerMissingModel(t *testing.T) {
	cfg := &config.Config{Ranker: config.RankerConfig{ModelPath: filepath.Join(t.TempDir(), "missing.json")}}

	require.Nil(t, ProvideScorer(cfg, newTestLogger()))
}

func TestProvideWardrobeSourceWithoutDSN(t *testing.T) {
	src := ProvideWardrobeSource(&config.Config{}, newTestLogger())
	require.NotNil(t, src)
	require.True(t, src.Ready())
}

func TestProvideHistoryService(t *testing.T) {
	require.Nil(t, ProvideHistoryService(&config.Config{}, newTestLogger()))

	cfg := &config.Config{History: config.HistoryConfig{Enabled: true, ListLimit: 5}}
	require.NotNil(t, ProvideHistoryService(cfg, newTestLogger()))
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
