package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
)

// GeminiConfig configures the Gemini planner.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

// GeminiPlanner proposes and narrates outfits through the Gemini API.
type GeminiPlanner struct {
	client  *genai.Client
	cfg     GeminiConfig
	prompts *Prompts
	logger  *slog.Logger
}

// NewGeminiPlanner opens a Gemini client.
func NewGeminiPlanner(ctx context.Context, cfg GeminiConfig, prompts *Prompts, logger *slog.Logger) (*GeminiPlanner, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiPlanner{
		client:  client,
		cfg:     cfg,
		prompts: prompts,
		logger:  logger.With("component", "planner.gemini"),
	}, nil
}

// Propose asks Gemini for candidates constrained by a response schema.
func (p *GeminiPlanner) Propose(ctx context.Context, pc stylist.ProposalContext) ([]stylist.Candidate, error) {
	system, user := p.prompts.Proposal(pc)

	model := p.client.GenerativeModel(p.cfg.Model)
	model.SetTemperature(p.cfg.Temperature)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = candidateGenaiSchema()

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return nil, fmt.Errorf("generate candidates: %w", err)
	}
	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("proposal received", "content", text)
	return DecodeCandidates(text)
}

// Narrate asks Gemini for the styling comment.
func (p *GeminiPlanner) Narrate(ctx context.Context, nc stylist.NarrationContext) (string, error) {
	model := p.client.GenerativeModel(p.cfg.Model)
	model.SetTemperature(p.cfg.Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(p.prompts.Narration(nc)))
	if err != nil {
		return "", fmt.Errorf("generate commentary: %w", err)
	}
	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Close releases the underlying client.
func (p *GeminiPlanner) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

func candidateGenaiSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"top":       {Type: genai.TypeString},
				"bottom":    {Type: genai.TypeString},
				"outerwear": {Type: genai.TypeString},
			},
			Required: []string{"top", "bottom", "outerwear"},
		},
	}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

var _ stylist.Planner = (*GeminiPlanner)(nil)
