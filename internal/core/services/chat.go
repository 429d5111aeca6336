package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
	"github.com/nimbleworks/dochat/internal/core/ports/driving"
	"github.com/nimbleworks/dochat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// probeTimeout bounds each availability check in ProbeAll.
const probeTimeout = 5 * time.Second

// contextSeparator joins retrieved passages in the prompt.
const contextSeparator = "\n\n---\n\n"

// ChatService orchestrates one chat request: optional retrieval, prompt
// assembly, and delegation to the selected provider. It holds no
// conversation state; history is owned by the caller.
type ChatService struct {
	registry  *ProviderRegistry
	retrieval driving.RetrievalService
	rag       domain.RAGSettings
}

// NewChatService creates a new chat service.
func NewChatService(registry *ProviderRegistry, retrieval driving.RetrievalService, rag domain.RAGSettings) *ChatService {
	if rag.ChatTopK <= 0 {
		rag.ChatTopK = domain.DefaultChatTopK
	}
	if rag.HistoryWindow <= 0 {
		rag.HistoryWindow = domain.DefaultHistoryWindow
	}
	return &ChatService{
		registry:  registry,
		retrieval: retrieval,
		rag:       rag,
	}
}

// Answer produces a response plus the list of sources used.
func (s *ChatService) Answer(ctx context.Context, req driving.AnswerRequest) (domain.Answer, error) {
	if strings.TrimSpace(req.Message) == "" {
		return domain.Answer{}, fmt.Errorf("%w: message is empty", domain.ErrInvalidInput)
	}

	provider, name, err := s.registry.Get(req.Provider)
	if err != nil {
		return domain.Answer{}, err
	}

	var (
		contextBlock string
		sources      []string
	)
	if req.UseRAG {
		topK := req.TopK
		if topK <= 0 {
			topK = s.rag.ChatTopK
		}
		passages, err := s.retrieval.Retrieve(ctx, req.Message, topK)
		if err != nil {
			return domain.Answer{}, err
		}
		contextBlock = buildContextBlock(passages)
		sources = dedupeSources(passages)
		logger.Debug("chat: %d passages from %d sources", len(passages), len(sources))
	}

	messages := s.buildMessages(req, contextBlock)

	text, err := provider.Chat(ctx, messages, driven.GenerateOptions{})
	if err != nil {
		return domain.Answer{}, classifyProviderError(string(name), err)
	}

	return domain.Answer{
		Text:     text,
		Provider: string(name),
		Model:    provider.ModelName(),
		Sources:  sources,
	}, nil
}

// buildMessages assembles the prompt: a system turn, the trailing
// history window, then the new user message.
func (s *ChatService) buildMessages(req driving.AnswerRequest, contextBlock string) []domain.Turn {
	system := s.rag.SystemPrompt
	if req.SystemPrompt != "" {
		system = req.SystemPrompt
	}
	if contextBlock != "" {
		system += "\n\nUse the following context to answer the question:\n\n" + contextBlock
	}

	history := req.History
	if len(history) > s.rag.HistoryWindow {
		history = history[len(history)-s.rag.HistoryWindow:]
	}

	messages := make([]domain.Turn, 0, len(history)+2)
	if system != "" {
		messages = append(messages, domain.Turn{Role: domain.RoleSystem, Content: system})
	}
	messages = append(messages, history...)
	messages = append(messages, domain.Turn{Role: domain.RoleUser, Content: req.Message})
	return messages
}

// ProbeAll checks every configured provider concurrently. One adapter's
// failure never hides the others.
func (s *ChatService) ProbeAll(ctx context.Context) map[string]domain.ProviderStatus {
	names := s.registry.Names()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		statuses = make(map[string]domain.ProviderStatus, len(names))
	)

	for _, name := range names {
		provider, _, err := s.registry.Get(string(name))
		if err != nil {
			continue
		}

		wg.Add(1)
		go func(name string, p driven.Provider) {
			defer wg.Done()

			probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()

			pingErr := p.Ping(probeCtx)

			mu.Lock()
			statuses[name] = domain.ProviderStatus{
				Name:      name,
				Available: pingErr == nil,
				Model:     p.ModelName(),
				Err:       pingErr,
			}
			mu.Unlock()
		}(string(name), provider)
	}

	wg.Wait()
	return statuses
}

// buildContextBlock formats retrieved passages for the prompt.
func buildContextBlock(passages []domain.Passage) string {
	if len(passages) == 0 {
		return ""
	}
	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = fmt.Sprintf("[Document %d] (Source: %s)\n%s", i+1, p.SourceID, p.Content)
	}
	return strings.Join(parts, contextSeparator)
}

// dedupeSources returns the distinct source IDs in rank order.
func dedupeSources(passages []domain.Passage) []string {
	seen := make(map[string]struct{}, len(passages))
	var sources []string
	for _, p := range passages {
		if _, ok := seen[p.SourceID]; ok {
			continue
		}
		seen[p.SourceID] = struct{}{}
		sources = append(sources, p.SourceID)
	}
	return sources
}

// classifyProviderError maps an adapter failure to a ProviderError with
// the failure kind attached. Timeouts and unreachable backends are
// distinguished from rejected or malformed responses.
func classifyProviderError(provider string, err error) *domain.ProviderError {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewProviderError(provider, domain.ProviderErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewProviderError(provider, domain.ProviderErrTimeout, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.NewProviderError(provider, domain.ProviderErrUnavailable, err)
	}

	return domain.NewProviderError(provider, domain.ProviderErrResponse, err)
}
