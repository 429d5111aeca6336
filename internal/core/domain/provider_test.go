package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderName_IsValid(t *testing.T) {
	for _, p := range []ProviderName{ProviderOllama, ProviderOpenAI, ProviderGemini, ProviderDeepSeek} {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, ProviderName("anthropic").IsValid())
	assert.False(t, ProviderName("").IsValid())
}

func TestProviderName_RequiresAPIKey(t *testing.T) {
	assert.False(t, ProviderOllama.RequiresAPIKey())
	assert.True(t, ProviderOpenAI.RequiresAPIKey())
	assert.True(t, ProviderGemini.RequiresAPIKey())
	assert.True(t, ProviderDeepSeek.RequiresAPIKey())
}

func TestProviderName_IsLocal(t *testing.T) {
	assert.True(t, ProviderOllama.IsLocal())
	assert.False(t, ProviderOpenAI.IsLocal())
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewProviderError("ollama", ProviderErrUnavailable, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ollama")
	assert.Contains(t, err.Error(), ProviderErrUnavailable)
}
