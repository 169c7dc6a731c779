package planner

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
)

func TestExtractTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`[{"top":"shirt",`), genai.Text(`"bottom":"denim"}]`)}},
		}},
	}

	text, err := extractText(resp)
	require.NoError(t, err)

	got, err := DecodeCandidates(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "none", got[0].Outerwear)
}

func TestExtractTextEmpty(t *testing.T) {
	_, err := extractText(&genai.GenerateContentResponse{})
	require.Error(t, err)

	_, err = extractText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	require.Error(t, err)
}

func TestCandidateGenaiSchema(t *testing.T) {
	schema := candidateGenaiSchema()
	require.Equal(t, genai.TypeArray, schema.Type)
	require.ElementsMatch(t, []string{"top", "bottom", "outerwear"}, schema.Items.Required)
}

func TestNewGeminiPlannerRequiresKey(t *testing.T) {
	_, err := NewGeminiPlanner(context.Background(), GeminiConfig{Model: "gemini-2.5-flash"}, NewPrompts(nil, 0), newTestLogger())
	require.Error(t, err)
}
