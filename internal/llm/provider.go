package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyOutput is returned when a model answers without any text
var ErrEmptyOutput = errors.New("received an empty response from the model")

// Provider defines the interface for LLM providers
// All providers MUST support structured output (JSON Schema) for reliable response parsing
type Provider interface {
	// Generate runs one request/response call. The provider MUST enforce the OutputSchema
	// so that RawOutput is a JSON document of that shape.
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model         string
	SystemPrompt  string
	UserPrompt    string
	Temperature   *float64
	ReasoningMode string
	// Structured output schema - REQUIRED for reliable JSON parsing
	OutputSchema *OutputSchema
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
}

// Usage is the token accounting of one call
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	RawOutput string `json:"-"` // JSON text conforming to the request's OutputSchema
	Model     string `json:"model"`
	Usage     Usage  `json:"usage"`
}

// Decode parses the raw JSON output into v
func (r *GenerationResponse) Decode(v any) error {
	if r == nil || r.RawOutput == "" {
		return ErrEmptyOutput
	}
	if err := json.Unmarshal([]byte(r.RawOutput), v); err != nil {
		return fmt.Errorf("failed to parse model output: %w", err)
	}
	return nil
}
