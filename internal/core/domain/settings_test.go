package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Validate_Defaults(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{
			name:   "zero chunk size",
			mutate: func(s *Settings) { s.Chunking.Size = 0 },
		},
		{
			name:   "negative overlap",
			mutate: func(s *Settings) { s.Chunking.Overlap = -1 },
		},
		{
			name: "overlap equals size",
			mutate: func(s *Settings) {
				s.Chunking.Size = 100
				s.Chunking.Overlap = 100
			},
		},
		{
			name:   "unknown default provider",
			mutate: func(s *Settings) { s.DefaultProvider = "mystery" },
		},
		{
			name: "default provider not configured",
			mutate: func(s *Settings) {
				s.DefaultProvider = ProviderGemini
			},
		},
		{
			name:   "non-positive top k",
			mutate: func(s *Settings) { s.RAG.TopK = 0 },
		},
		{
			name:   "negative history window",
			mutate: func(s *Settings) { s.RAG.HistoryWindow = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(settings)

			err := settings.Validate()

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestChunkingSettings_Validate_MaxOverlap(t *testing.T) {
	cfg := ChunkingSettings{Size: 100, Overlap: 99}

	assert.NoError(t, cfg.Validate())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.True(t, EmbeddingSettings{Provider: ProviderOllama}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: ProviderOpenAI, APIKey: "sk"}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: ProviderOpenAI}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: "mystery"}.IsConfigured())
}

func TestProviderSettings_IsConfigured(t *testing.T) {
	assert.True(t, ProviderSettings{}.IsConfigured(ProviderOllama))
	assert.False(t, ProviderSettings{}.IsConfigured(ProviderOpenAI))
	assert.True(t, ProviderSettings{APIKey: "key"}.IsConfigured(ProviderGemini))
}
