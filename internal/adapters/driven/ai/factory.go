// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/nimbleworks/dochat/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/nimbleworks/dochat/internal/adapters/driven/embedding/openai"
	geminillm "github.com/nimbleworks/dochat/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/nimbleworks/dochat/internal/adapters/driven/llm/ollama"
	openaillm "github.com/nimbleworks/dochat/internal/adapters/driven/llm/openai"
	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service named by the settings.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding backend is not configured", domain.ErrConfiguration)
	}

	switch settings.Provider {
	case domain.ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: %s does not support embeddings, use ollama or openai",
			domain.ErrConfiguration, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and validates
// connectivity with a bounded ping.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: embedding service unreachable: %w", domain.ErrEmbedding, err)
	}
	return svc, nil
}

// CreateProvider creates the chat provider for the given name and settings.
func CreateProvider(name domain.ProviderName, settings domain.ProviderSettings) (driven.Provider, error) {
	if !settings.IsConfigured(name) {
		return nil, fmt.Errorf("%w: provider %s is missing an API key", domain.ErrConfiguration, name)
	}

	switch name {
	case domain.ProviderOllama:
		return ollamallm.NewProvider(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.ProviderOpenAI:
		return openaillm.NewProvider(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.ProviderGemini:
		return geminillm.NewProvider(geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.ProviderDeepSeek:
		// DeepSeek speaks the OpenAI chat-completions protocol.
		baseURL := settings.BaseURL
		if baseURL == "" {
			baseURL = openaillm.DeepSeekBaseURL
		}
		model := settings.Model
		if model == "" {
			model = openaillm.DeepSeekDefaultModel
		}
		return openaillm.NewProvider(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: baseURL,
			Model:   model,
			Name:    "deepseek",
		})

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, name)
	}
}

// CreateProviders builds the closed provider set from the settings,
// skipping entries that cannot be constructed and reporting them as
// warnings. The default provider failing to construct is fatal.
func CreateProviders(settings *domain.Settings) (map[domain.ProviderName]driven.Provider, []string, error) {
	providers := make(map[domain.ProviderName]driven.Provider, len(settings.Providers))
	var warnings []string

	for name, ps := range settings.Providers {
		p, err := CreateProvider(name, ps)
		if err != nil {
			if name == settings.DefaultProvider {
				closeAll(providers)
				return nil, nil, fmt.Errorf("default provider %s: %w", name, err)
			}
			warnings = append(warnings, fmt.Sprintf("provider %s skipped: %v", name, err))
			continue
		}
		providers[name] = p
	}

	if len(providers) == 0 {
		return nil, warnings, fmt.Errorf("%w: no usable providers configured", domain.ErrConfiguration)
	}
	return providers, warnings, nil
}

// ValidateProvider constructs the named provider and pings it within a
// bounded timeout. Intended for configuration checks, not request paths.
func ValidateProvider(name domain.ProviderName, settings domain.ProviderSettings) error {
	p, err := CreateProvider(name, settings)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return p.Ping(ctx)
}

func closeAll(providers map[domain.ProviderName]driven.Provider) {
	for _, p := range providers {
		p.Close()
	}
}
