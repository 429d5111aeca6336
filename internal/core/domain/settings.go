package domain

import "fmt"

// Default configuration values, matching the shipped config template.
const (
	// DefaultChunkSize is the chunk window in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the shared context between adjacent chunks.
	DefaultChunkOverlap = 200

	// DefaultTopK is the retrieval depth when the caller does not supply one.
	DefaultTopK = 5

	// DefaultChatTopK is the retrieval depth used for chat context.
	DefaultChatTopK = 3

	// DefaultHistoryWindow is the number of trailing conversation turns
	// included in the prompt.
	DefaultHistoryWindow = 20

	// DefaultMaxDocumentBytes caps the raw size of an ingested document.
	DefaultMaxDocumentBytes = 10 << 20 // 10 MiB
)

// ChunkingSettings holds chunker configuration.
type ChunkingSettings struct {
	// Size is the chunk window in characters.
	Size int

	// Overlap is the number of characters adjacent chunks share.
	// Must be non-negative and strictly less than Size.
	Overlap int
}

// Validate reports invalid chunking configuration. Violations are a
// startup error, not a per-call one.
func (c ChunkingSettings) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, c.Size)
	}
	if c.Overlap < 0 || c.Overlap >= c.Size {
		return fmt.Errorf("%w: chunk overlap must be in [0, %d), got %d",
			ErrConfiguration, c.Size, c.Overlap)
	}
	return nil
}

// EmbeddingSettings holds embedding backend configuration.
type EmbeddingSettings struct {
	// Provider is the embedding backend (ollama or openai).
	Provider ProviderName

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding backend is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// ProviderSettings holds configuration for one chat backend.
type ProviderSettings struct {
	// Model is the model identifier.
	Model string

	// BaseURL is the API endpoint. Required for Ollama and DeepSeek,
	// optional override elsewhere.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the provider has what it needs to run.
func (p ProviderSettings) IsConfigured(name ProviderName) bool {
	if name.RequiresAPIKey() && p.APIKey == "" {
		return false
	}
	return true
}

// RAGSettings holds retrieval and prompt-assembly configuration.
type RAGSettings struct {
	// TopK is the default retrieval depth.
	TopK int

	// ChatTopK is the retrieval depth used for chat context.
	ChatTopK int

	// HistoryWindow is the number of trailing turns kept in the prompt.
	HistoryWindow int

	// SystemPrompt is the default system instruction.
	SystemPrompt string
}

// Settings is the immutable top-level configuration. It is constructed
// once at startup and passed by reference into the services; core logic
// never reaches into ambient globals.
type Settings struct {
	// DataDir is where the vector index database lives.
	DataDir string

	// MaxDocumentBytes caps raw document size at ingestion.
	MaxDocumentBytes int

	// Chunking configures the chunker.
	Chunking ChunkingSettings

	// Embedding configures the embedding backend.
	Embedding EmbeddingSettings

	// Providers configures each chat backend, keyed by name.
	Providers map[ProviderName]ProviderSettings

	// DefaultProvider is used when a request does not name one.
	DefaultProvider ProviderName

	// RAG configures retrieval and prompt assembly.
	RAG RAGSettings
}

// Validate reports configuration errors that must stop startup.
func (s *Settings) Validate() error {
	if err := s.Chunking.Validate(); err != nil {
		return err
	}
	if !s.DefaultProvider.IsValid() {
		return fmt.Errorf("%w: unknown default provider %q", ErrConfiguration, s.DefaultProvider)
	}
	if _, ok := s.Providers[s.DefaultProvider]; !ok {
		return fmt.Errorf("%w: default provider %q is not configured", ErrConfiguration, s.DefaultProvider)
	}
	if s.RAG.TopK <= 0 {
		return fmt.Errorf("%w: rag top_k must be positive, got %d", ErrConfiguration, s.RAG.TopK)
	}
	if s.RAG.HistoryWindow < 0 {
		return fmt.Errorf("%w: history window must be non-negative, got %d",
			ErrConfiguration, s.RAG.HistoryWindow)
	}
	return nil
}

// DefaultSettings returns the baseline configuration before any file or
// environment overrides are applied.
func DefaultSettings() *Settings {
	return &Settings{
		MaxDocumentBytes: DefaultMaxDocumentBytes,
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Embedding: EmbeddingSettings{
			Provider: ProviderOllama,
		},
		Providers: map[ProviderName]ProviderSettings{
			ProviderOllama: {},
		},
		DefaultProvider: ProviderOllama,
		RAG: RAGSettings{
			TopK:          DefaultTopK,
			ChatTopK:      DefaultChatTopK,
			HistoryWindow: DefaultHistoryWindow,
			SystemPrompt:  "You are a helpful assistant. Answer using the provided context when it is relevant.",
		},
	}
}
