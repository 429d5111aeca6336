package driven

import (
	"context"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// Provider is one interchangeable language-model backend. The set of
// variants is closed and constructed once at startup from configuration;
// there is no runtime dynamic lookup.
//
// Implementations may include:
//   - Ollama (local inference server)
//   - OpenAI, Google Gemini, DeepSeek (cloud APIs)
type Provider interface {
	// Generate produces a completion from a plain prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation. Messages are ordered;
	// a leading system turn carries the system instructions.
	Chat(ctx context.Context, messages []domain.Turn, opts GenerateOptions) (string, error)

	// ListModels returns the model identifiers the backend offers.
	ListModels(ctx context.Context) ([]string, error)

	// ModelName returns the configured model identifier.
	ModelName() string

	// Ping validates the backend is reachable with a lightweight check
	// (reachability for local servers, credential presence plus a cheap
	// call for cloud APIs).
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
