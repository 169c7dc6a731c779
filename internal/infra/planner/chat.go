package planner

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/infra/llm/chatgpt"
)

// ChatClient is the subset of the chat completions client the planner needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ChatConfig selects the model used for both operations.
type ChatConfig struct {
	Model       string
	Temperature float32
}

// ChatPlanner proposes and narrates outfits through an OpenAI-compatible endpoint.
type ChatPlanner struct {
	client  ChatClient
	cfg     ChatConfig
	prompts *Prompts
	logger  *slog.Logger
}

// NewChatPlanner constructs the adapter.
func NewChatPlanner(client ChatClient, cfg ChatConfig, prompts *Prompts, logger *slog.Logger) *ChatPlanner {
	return &ChatPlanner{
		client:  client,
		cfg:     cfg,
		prompts: prompts,
		logger:  logger.With("component", "planner.chat"),
	}
}

// Propose asks the model for schema-constrained candidates.
func (p *ChatPlanner) Propose(ctx context.Context, pc stylist.ProposalContext) ([]stylist.Candidate, error) {
	system, user := p.prompts.Proposal(pc)
	resp, err := p.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Temperature: p.cfg.Temperature,
		Messages: []chatgpt.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &chatgpt.ResponseFormat{
			Type: "json_schema",
			JSONSchema: &chatgpt.JSONSchema{
				Name:   "outfit_candidates",
				Schema: ResponseSchema(),
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	content, err := resp.FirstContent()
	if err != nil {
		return nil, err
	}
	p.logger.Debug("proposal received", "content", content, "total_tokens", resp.Usage.TotalTokens)
	return DecodeCandidates(content)
}

// Narrate asks the model for the styling comment.
func (p *ChatPlanner) Narrate(ctx context.Context, nc stylist.NarrationContext) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Temperature: p.cfg.Temperature,
		Messages:    []chatgpt.Message{{Role: "user", Content: p.prompts.Narration(nc)}},
	})
	if err != nil {
		return "", err
	}
	content, err := resp.FirstContent()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

var _ stylist.Planner = (*ChatPlanner)(nil)
