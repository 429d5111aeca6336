// Package cli implements the dochat command-line interface.
package cli

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nimbleworks/dochat/internal/adapters/driven/ai"
	"github.com/nimbleworks/dochat/internal/adapters/driven/config/file"
	"github.com/nimbleworks/dochat/internal/adapters/driven/storage/sqlite"
	"github.com/nimbleworks/dochat/internal/chunker"
	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
	"github.com/nimbleworks/dochat/internal/core/ports/driving"
	"github.com/nimbleworks/dochat/internal/core/services"
	"github.com/nimbleworks/dochat/internal/extractors"
	"github.com/nimbleworks/dochat/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dochat",
	Short: "Chat with your documents",
	Long: `dochat ingests documents into a local vector index and answers
questions about them using a configurable AI provider (Ollama, OpenAI,
Gemini or DeepSeek). Retrieval-augmented answers cite their sources.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	// A .env file in the working directory may hold API keys; its
	// absence is not an error.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

// app holds the wired services. It is built lazily on first use so
// commands like version never touch configuration or storage.
type app struct {
	settings    *domain.Settings
	configStore *file.ConfigStore
	index       driven.VectorIndex
	embedder    driven.EmbeddingService
	registry    *services.ProviderRegistry
	ingest      driving.IngestService
	retrieval   driving.RetrievalService
	chat        driving.ChatService
}

var (
	appOnce sync.Once
	appInst *app
	appErr  error
)

// getApp wires the services on first call and reuses them afterwards.
func getApp() (*app, error) {
	appOnce.Do(func() {
		appInst, appErr = buildApp()
	})
	return appInst, appErr
}

func buildApp() (*app, error) {
	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, err
	}

	settings, err := store.Load()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	index, err := sqlite.NewIndex(settings.DataDir)
	if err != nil {
		return nil, err
	}

	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		index.Close()
		return nil, err
	}

	ch, err := chunker.New(settings.Chunking.Size, settings.Chunking.Overlap)
	if err != nil {
		index.Close()
		return nil, err
	}

	providers, warnings, err := ai.CreateProviders(settings)
	if err != nil {
		index.Close()
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("%s", w)
	}

	registry, err := services.NewProviderRegistry(providers, settings.DefaultProvider)
	if err != nil {
		index.Close()
		return nil, err
	}

	ingest := services.NewIngestService(index, embedder, extractors.Defaults(), ch, settings.MaxDocumentBytes)
	retrieval := services.NewRetrievalService(index, embedder, settings.RAG.TopK)
	chat := services.NewChatService(registry, retrieval, settings.RAG)

	return &app{
		settings:    settings,
		configStore: store,
		index:       index,
		embedder:    embedder,
		registry:    registry,
		ingest:      ingest,
		retrieval:   retrieval,
		chat:        chat,
	}, nil
}
