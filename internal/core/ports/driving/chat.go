package driving

import (
	"context"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// AnswerRequest carries one chat request through the orchestrator.
type AnswerRequest struct {
	// Message is the new user message.
	Message string

	// History is the prior conversation, oldest first. Only the
	// trailing history-window turns are included in the prompt.
	History []domain.Turn

	// Provider names the backend to use. Empty selects the configured
	// default. An unknown name is an error; there is no fallback.
	Provider string

	// UseRAG enables retrieval-augmented context.
	UseRAG bool

	// SystemPrompt overrides the configured system instruction when
	// non-empty.
	SystemPrompt string

	// TopK is the retrieval depth when UseRAG is set. Zero or negative
	// selects the configured chat default.
	TopK int
}

// ChatService orchestrates one chat request: optional retrieval, prompt
// assembly, and delegation to the selected provider.
type ChatService interface {
	// Answer produces a response plus the list of sources used.
	// Provider failures surface as *domain.ProviderError.
	Answer(ctx context.Context, req AnswerRequest) (domain.Answer, error)

	// ProbeAll checks every configured provider's availability
	// independently; one adapter's failure never hides the others.
	ProbeAll(ctx context.Context) map[string]domain.ProviderStatus
}
