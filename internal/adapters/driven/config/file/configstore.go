// Package file provides a TOML-backed settings store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// Environment variables consulted for API keys. Values in the
// environment override the config file, so keys never have to be
// written to disk.
const (
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvDeepSeekKey = "DEEPSEEK_API_KEY"
)

// fileConfig is the TOML layout of the config file. It is deliberately
// separate from domain.Settings so the on-disk format can evolve
// without touching the core types.
type fileConfig struct {
	DataDir          string `toml:"data_dir,omitempty"`
	MaxDocumentBytes int    `toml:"max_document_bytes,omitempty"`
	DefaultProvider  string `toml:"default_provider,omitempty"`

	Chunking struct {
		Size    int `toml:"size,omitempty"`
		Overlap int `toml:"overlap,omitempty"`
	} `toml:"chunking"`

	Embedding struct {
		Provider string `toml:"provider,omitempty"`
		Model    string `toml:"model,omitempty"`
		BaseURL  string `toml:"base_url,omitempty"`
		APIKey   string `toml:"api_key,omitempty"`
	} `toml:"embedding"`

	Providers map[string]providerConfig `toml:"providers"`

	RAG struct {
		TopK          int    `toml:"top_k,omitempty"`
		ChatTopK      int    `toml:"chat_top_k,omitempty"`
		HistoryWindow int    `toml:"history_window,omitempty"`
		SystemPrompt  string `toml:"system_prompt,omitempty"`
	} `toml:"rag"`
}

type providerConfig struct {
	Model   string `toml:"model,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
	APIKey  string `toml:"api_key,omitempty"`
}

// ConfigStore loads and saves settings as a TOML file.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a config store. If configDir is empty it
// defaults to ~/.dochat.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".dochat")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from the TOML file, applies environment overrides,
// and fills gaps with defaults. A missing file yields the defaults.
func (s *ConfigStore) Load() (*domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(settings)
			return settings, nil
		}
		return nil, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrConfiguration, s.filePath, err)
	}

	applyFileConfig(settings, &fc)
	applyEnvOverrides(settings)
	return settings, nil
}

// Save persists settings to the TOML file. API keys are written only if
// they did not come from the environment.
func (s *ConfigStore) Save(settings *domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fc fileConfig
	fc.DataDir = settings.DataDir
	fc.MaxDocumentBytes = settings.MaxDocumentBytes
	fc.DefaultProvider = string(settings.DefaultProvider)
	fc.Chunking.Size = settings.Chunking.Size
	fc.Chunking.Overlap = settings.Chunking.Overlap
	fc.Embedding.Provider = string(settings.Embedding.Provider)
	fc.Embedding.Model = settings.Embedding.Model
	fc.Embedding.BaseURL = settings.Embedding.BaseURL
	if os.Getenv(EnvOpenAIKey) == "" {
		fc.Embedding.APIKey = settings.Embedding.APIKey
	}
	fc.Providers = make(map[string]providerConfig, len(settings.Providers))
	for name, ps := range settings.Providers {
		pc := providerConfig{
			Model:   ps.Model,
			BaseURL: ps.BaseURL,
		}
		if os.Getenv(envKeyFor(name)) == "" {
			pc.APIKey = ps.APIKey
		}
		fc.Providers[string(name)] = pc
	}
	fc.RAG.TopK = settings.RAG.TopK
	fc.RAG.ChatTopK = settings.RAG.ChatTopK
	fc.RAG.HistoryWindow = settings.RAG.HistoryWindow
	fc.RAG.SystemPrompt = settings.RAG.SystemPrompt

	data, err := toml.Marshal(fc)
	if err != nil {
		return err
	}

	// Restricted permissions: the file may hold API keys.
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// applyFileConfig copies non-zero file values over the defaults.
func applyFileConfig(settings *domain.Settings, fc *fileConfig) {
	if fc.DataDir != "" {
		settings.DataDir = fc.DataDir
	}
	if fc.MaxDocumentBytes > 0 {
		settings.MaxDocumentBytes = fc.MaxDocumentBytes
	}
	if fc.DefaultProvider != "" {
		settings.DefaultProvider = domain.ProviderName(fc.DefaultProvider)
	}
	if fc.Chunking.Size > 0 {
		settings.Chunking.Size = fc.Chunking.Size
	}
	if fc.Chunking.Overlap > 0 {
		settings.Chunking.Overlap = fc.Chunking.Overlap
	}
	if fc.Embedding.Provider != "" {
		settings.Embedding.Provider = domain.ProviderName(fc.Embedding.Provider)
	}
	if fc.Embedding.Model != "" {
		settings.Embedding.Model = fc.Embedding.Model
	}
	if fc.Embedding.BaseURL != "" {
		settings.Embedding.BaseURL = fc.Embedding.BaseURL
	}
	if fc.Embedding.APIKey != "" {
		settings.Embedding.APIKey = fc.Embedding.APIKey
	}
	for name, pc := range fc.Providers {
		settings.Providers[domain.ProviderName(name)] = domain.ProviderSettings{
			Model:   pc.Model,
			BaseURL: pc.BaseURL,
			APIKey:  pc.APIKey,
		}
	}
	if fc.RAG.TopK > 0 {
		settings.RAG.TopK = fc.RAG.TopK
	}
	if fc.RAG.ChatTopK > 0 {
		settings.RAG.ChatTopK = fc.RAG.ChatTopK
	}
	if fc.RAG.HistoryWindow > 0 {
		settings.RAG.HistoryWindow = fc.RAG.HistoryWindow
	}
	if fc.RAG.SystemPrompt != "" {
		settings.RAG.SystemPrompt = fc.RAG.SystemPrompt
	}
}

// applyEnvOverrides fills API keys from the environment. An environment
// key wins over a file key, and configures the provider entry if the
// file never mentioned it.
func applyEnvOverrides(settings *domain.Settings) {
	if key := os.Getenv(EnvOpenAIKey); key != "" && settings.Embedding.Provider == domain.ProviderOpenAI {
		settings.Embedding.APIKey = key
	}
	for _, name := range []domain.ProviderName{domain.ProviderOpenAI, domain.ProviderGemini, domain.ProviderDeepSeek} {
		key := os.Getenv(envKeyFor(name))
		if key == "" {
			continue
		}
		ps := settings.Providers[name]
		ps.APIKey = key
		settings.Providers[name] = ps
	}
}

// envKeyFor maps a provider name to its environment variable.
func envKeyFor(name domain.ProviderName) string {
	switch name {
	case domain.ProviderOpenAI:
		return EnvOpenAIKey
	case domain.ProviderGemini:
		return EnvGeminiKey
	case domain.ProviderDeepSeek:
		return EnvDeepSeekKey
	default:
		return ""
	}
}
