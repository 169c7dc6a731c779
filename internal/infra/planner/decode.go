package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

// candidateArraySchema accepts the bare array shape. Outerwear may be omitted.
var candidateArraySchema = mustSchema(map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"top":       map[string]any{"type": "string", "minLength": 1},
			"bottom":    map[string]any{"type": "string", "minLength": 1},
			"outerwear": map[string]any{"type": "string"},
		},
		"required": []any{"top", "bottom"},
	},
})

// ResponseSchema is the strict object schema sent as a structured-output format. Strict
// mode does not allow a bare array at the root, so candidates sit under "outfits".
func ResponseSchema() map[string]any {
	slot := map[string]any{"type": "string"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"outfits": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"top":       slot,
						"bottom":    slot,
						"outerwear": slot,
					},
					"required":             []any{"top", "bottom", "outerwear"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"outfits"},
		"additionalProperties": false,
	}
}

// SchemaError lists the schema violations found in a model reply.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "candidate payload does not match schema: " + strings.Join(e.Violations, "; ")
}

// DecodeCandidates parses a model reply into candidates. It accepts a bare array or an
// object with an "outfits" array, optionally wrapped in a markdown code fence.
func DecodeCandidates(raw string) ([]stylist.Candidate, error) {
	text := cleanJSONBlock(raw)
	if text == "" {
		return nil, errors.New("empty candidate payload")
	}
	if strings.HasPrefix(text, "{") {
		var envelope struct {
			Outfits json.RawMessage `json:"outfits"`
		}
		if err := json.Unmarshal([]byte(text), &envelope); err != nil {
			return nil, fmt.Errorf("parse candidate envelope: %w", err)
		}
		if len(envelope.Outfits) == 0 {
			return nil, errors.New("candidate envelope has no outfits")
		}
		text = string(envelope.Outfits)
	}

	result, err := candidateArraySchema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			violations = append(violations, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
		}
		return nil, &SchemaError{Violations: violations}
	}

	var out []stylist.Candidate
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	for i := range out {
		out[i] = normalizeCandidate(out[i])
	}
	return out, nil
}

func normalizeCandidate(c stylist.Candidate) stylist.Candidate {
	c.Top = strings.ToLower(strings.TrimSpace(c.Top))
	c.Bottom = strings.ToLower(strings.TrimSpace(c.Bottom))
	c.Outerwear = strings.ToLower(strings.TrimSpace(c.Outerwear))
	switch c.Outerwear {
	case "", "없음", "null":
		c.Outerwear = wardrobe.NoOuterwear
	}
	return c
}

func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func mustSchema(doc map[string]any) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("compile candidate schema: %v", err))
	}
	return schema
}
