package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over a generative text model.
// The quiz pipeline only ever does single-turn generation: one system
// prompt, one user prompt, one JSON response.
type Provider interface {
	// Generate sends the prompt to the model and returns its output.
	// When the request carries a Schema, the provider uses its native
	// structured-output mechanism and validates the result against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and output constraints.
	System string

	// Prompt is the user-facing instruction text.
	Prompt string

	// Schema, when set, requests structured output conforming to the
	// given JSON Schema. When nil the response Content is raw text.
	Schema *Schema

	// MaxTokens is the response token budget.
	MaxTokens int

	// Temperature controls randomness (0.0-1.0). Zero means deterministic.
	Temperature float64
}

// Schema describes the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "quiz-questions".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output. With a Schema this is validated
	// JSON; without one it is whatever text the model produced.
	Content json.RawMessage

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
