package ranker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
)

// testArtifact scores warm longsleeve/denim outfits higher: hidden = relu(temp + longsleeve + denim), out = sigmoid(hidden - 1).
func testArtifact() Artifact {
	row := make([]float64, stylist.Dimension)
	row[stylist.IdxTemperature] = 1
	row[stylist.IdxTopLongSleeve] = 1
	row[stylist.IdxBottomDenim] = 1
	return Artifact{
		Schema:   stylist.SchemaVersion,
		InputDim: stylist.Dimension,
		Layers: []Layer{
			{Weights: [][]float64{row}, Bias: []float64{0}, Activation: "relu"},
			{Weights: [][]float64{{1}}, Bias: []float64{-1}, Activation: "sigmoid"},
		},
		Output: "score",
	}
}

func TestModelScore(t *testing.T) {
	model, err := FromArtifact(testArtifact())
	require.NoError(t, err)

	vec := stylist.Encode(forecast.Day{AvgTemp: 20}, stylist.Candidate{Top: "longsleeve", Bottom: "denim", Outerwear: "none"})
	score, err := model.Score(vec)
	require.NoError(t, err)
	require.InDelta(t, 1/(1+math.Exp(-1.5)), score, 1e-9)

	_, err = model.Score(vec[:10])
	require.Error(t, err)
}

func TestModelScoreBatchOrder(t *testing.T) {
	model, err := FromArtifact(testArtifact())
	require.NoError(t, err)

	day := forecast.Day{AvgTemp: 15}
	scores, err := model.ScoreBatch([][]float32{
		stylist.Encode(day, stylist.Candidate{Top: "shirt", Bottom: "slacks", Outerwear: "none"}),
		stylist.Encode(day, stylist.Candidate{Top: "longsleeve", Bottom: "denim", Outerwear: "none"}),
	})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.Greater(t, scores[1], scores[0])
}

func TestModelConcurrentScoring(t *testing.T) {
	model, err := FromArtifact(testArtifact())
	require.NoError(t, err)
	vec := stylist.Encode(forecast.Day{AvgTemp: 25}, stylist.Candidate{Top: "longsleeve", Bottom: "denim"})
	want, err := model.Score(vec)
	require.NoError(t, err)

	got := make([]float64, 8)
	errs := make([]error, 8)
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = model.Score(vec)
		}(i)
	}
	wg.Wait()
	for i := range got {
		require.NoError(t, errs[i])
		require.Equal(t, want, got[i])
	}
}

func TestFromArtifactRejectsIncompatible(t *testing.T) {
	art := testArtifact()
	art.Schema = "outfit-features/v0"
	_, err := FromArtifact(art)
	require.ErrorIs(t, err, ErrIncompatible)

	art = testArtifact()
	art.InputDim = 50
	_, err = FromArtifact(art)
	require.ErrorIs(t, err, ErrIncompatible)
}

func TestFromArtifactRejectsBadShapes(t *testing.T) {
	art := testArtifact()
	art.Layers[0].Weights[0] = art.Layers[0].Weights[0][:50]
	_, err := FromArtifact(art)
	require.Error(t, err)

	art = testArtifact()
	art.Layers[1].Activation = "softmax"
	_, err = FromArtifact(art)
	require.Error(t, err)

	art = testArtifact()
	art.Layers = art.Layers[:1]
	art.Layers[0].Weights = append(art.Layers[0].Weights, art.Layers[0].Weights[0])
	art.Layers[0].Bias = []float64{0, 0}
	_, err = FromArtifact(art)
	require.ErrorContains(t, err, "one output")

	art = testArtifact()
	art.Layers = nil
	_, err = FromArtifact(art)
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	raw, err := json.Marshal(testArtifact())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "ranker.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	model, err := Load(context.Background(), path, S3Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Equal(t, stylist.SchemaVersion, model.Schema())

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"), S3Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := parseS3URI("s3://models/ranker/v1.json")
	require.NoError(t, err)
	require.Equal(t, "models", bucket)
	require.Equal(t, "ranker/v1.json", key)

	for _, bad := range []string{"s3://models", "s3:///key", "s3://models/"} {
		_, _, err := parseS3URI(bad)
		require.Error(t, err, bad)
	}
}

func TestLoadS3RequiresEndpoint(t *testing.T) {
	_, err := Load(context.Background(), "s3://models/ranker.json", S3Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorContains(t, err, "endpoint")
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "acct.r2.cloudflarestorage.com", sanitizeEndpoint("https://acct.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint("http://localhost:9000"))
}
