package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
	"github.com/ggyyuubb/wearther/internal/infra/llm/chatgpt"
)

func TestChatPlannerPropose(t *testing.T) {
	client := &stubChatClient{content: `{"outfits":[{"top":"sweater","bottom":"slacks","outerwear":"coat"}]}`}
	p := NewChatPlanner(client, ChatConfig{Model: "gpt-4o-mini", Temperature: 0.2}, NewPrompts(EstimateTokens, 0), newTestLogger())

	got, err := p.Propose(context.Background(), stylist.ProposalContext{
		Weather: forecast.Day{AvgTemp: 4, Condition: "clouds"},
		Catalog: wardrobe.Catalog{wardrobe.SlotTop: {"sweater"}, wardrobe.SlotBottom: {"slacks"}, wardrobe.SlotOuterwear: {"coat", "none"}},
		Count:   5,
	})
	require.NoError(t, err)
	require.Equal(t, []stylist.Candidate{{Top: "sweater", Bottom: "slacks", Outerwear: "coat"}}, got)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	require.Equal(t, "gpt-4o-mini", req.Model)
	require.Len(t, req.Messages, 2)
	require.Equal(t, "system", req.Messages[0].Role)
	require.NotNil(t, req.ResponseFormat)
	require.Equal(t, "json_schema", req.ResponseFormat.Type)
	require.True(t, req.ResponseFormat.JSONSchema.Strict)
}

func TestChatPlannerNarrate(t *testing.T) {
	client := &stubChatClient{content: "  A warm, tidy look.  "}
	p := NewChatPlanner(client, ChatConfig{Model: "m"}, NewPrompts(EstimateTokens, 0), newTestLogger())

	got, err := p.Narrate(context.Background(), stylist.NarrationContext{})
	require.NoError(t, err)
	require.Equal(t, "A warm, tidy look.", got)
	require.Nil(t, client.requests[0].ResponseFormat)
}

func TestChatPlannerPropagatesErrors(t *testing.T) {
	p := NewChatPlanner(&stubChatClient{err: errors.New("boom")}, ChatConfig{}, NewPrompts(nil, 0), newTestLogger())

	_, err := p.Propose(context.Background(), stylist.ProposalContext{})
	require.Error(t, err)
	_, err = p.Narrate(context.Background(), stylist.NarrationContext{})
	require.Error(t, err)

	empty := NewChatPlanner(&stubChatClient{noChoices: true}, ChatConfig{}, NewPrompts(nil, 0), newTestLogger())
	_, err = empty.Propose(context.Background(), stylist.ProposalContext{})
	require.Error(t, err)
}

type stubChatClient struct {
	content   string
	err       error
	noChoices bool
	requests  []chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	var resp chatgpt.ChatCompletionResponse
	if s.err != nil {
		return resp, s.err
	}
	if s.noChoices {
		return resp, nil
	}
	resp.Choices = append(resp.Choices, struct {
		Message      chatgpt.Message `json:"message"`
		FinishReason string          `json:"finish_reason"`
	}{Message: chatgpt.Message{Role: "assistant", Content: s.content}})
	return resp, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
