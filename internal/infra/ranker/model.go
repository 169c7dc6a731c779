// Package ranker loads the dense scoring model and evaluates outfit feature vectors.
package ranker

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
)

// ErrIncompatible reports an artifact built for a different feature layout.
var ErrIncompatible = errors.New("ranking model is incompatible with the feature schema")

// Artifact is the serialized model.
type Artifact struct {
	Schema   string  `json:"schema"`
	InputDim int     `json:"inputDim"`
	Layers   []Layer `json:"layers"`
	Output   string  `json:"output,omitempty"`
}

// Layer is one dense layer. Weights are indexed [out][in].
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

type activation func(float64) float64

var activations = map[string]activation{
	"":        func(x float64) float64 { return x },
	"linear":  func(x float64) float64 { return x },
	"relu":    func(x float64) float64 { return math.Max(0, x) },
	"sigmoid": func(x float64) float64 { return 1 / (1 + math.Exp(-x)) },
	"tanh":    math.Tanh,
}

type dense struct {
	weights [][]float64
	bias    []float64
	act     activation
}

// Model is immutable after Parse and safe for concurrent use.
type Model struct {
	schema string
	output string
	layers []dense
}

// Parse decodes and validates an artifact.
func Parse(data []byte) (*Model, error) {
	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decode ranking model: %w", err)
	}
	return FromArtifact(art)
}

// FromArtifact validates an artifact against the feature schema and its own layer shapes.
func FromArtifact(art Artifact) (*Model, error) {
	if art.Schema != stylist.SchemaVersion {
		return nil, fmt.Errorf("%w: schema %q, want %q", ErrIncompatible, art.Schema, stylist.SchemaVersion)
	}
	if art.InputDim != stylist.Dimension {
		return nil, fmt.Errorf("%w: input dimension %d, want %d", ErrIncompatible, art.InputDim, stylist.Dimension)
	}
	if len(art.Layers) == 0 {
		return nil, errors.New("ranking model has no layers")
	}

	layers := make([]dense, 0, len(art.Layers))
	in := art.InputDim
	for i, l := range art.Layers {
		act, ok := activations[l.Activation]
		if !ok {
			return nil, fmt.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
		if len(l.Weights) == 0 || len(l.Weights) != len(l.Bias) {
			return nil, fmt.Errorf("layer %d: %d weight rows for %d biases", i, len(l.Weights), len(l.Bias))
		}
		for j, row := range l.Weights {
			if len(row) != in {
				return nil, fmt.Errorf("layer %d row %d: %d inputs, want %d", i, j, len(row), in)
			}
		}
		layers = append(layers, dense{weights: l.Weights, bias: l.Bias, act: act})
		in = len(l.Weights)
	}
	if in != 1 {
		return nil, fmt.Errorf("ranking model must produce one output, got %d", in)
	}
	return &Model{schema: art.Schema, output: art.Output, layers: layers}, nil
}

// Schema returns the feature schema the model was trained on.
func (m *Model) Schema() string { return m.schema }

// Score evaluates one feature vector.
func (m *Model) Score(vec []float32) (float64, error) {
	if len(vec) != stylist.Dimension {
		return 0, fmt.Errorf("feature vector has %d values, want %d", len(vec), stylist.Dimension)
	}
	x := make([]float64, len(vec))
	for i, v := range vec {
		x[i] = float64(v)
	}
	for _, l := range m.layers {
		next := make([]float64, len(l.weights))
		for o, row := range l.weights {
			sum := l.bias[o]
			for i, w := range row {
				sum += w * x[i]
			}
			next[o] = l.act(sum)
		}
		x = next
	}
	return x[0], nil
}

// ScoreBatch evaluates vectors in order.
func (m *Model) ScoreBatch(vecs [][]float32) ([]float64, error) {
	out := make([]float64, len(vecs))
	for i, v := range vecs {
		score, err := m.Score(v)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		out[i] = score
	}
	return out, nil
}

var _ stylist.Scorer = (*Model)(nil)
