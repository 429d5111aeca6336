package domain

// ProviderName identifies a language-model backend.
type ProviderName string

// Available providers.
const (
	// ProviderOllama is a local Ollama instance.
	ProviderOllama ProviderName = "ollama"

	// ProviderOpenAI is the OpenAI cloud API.
	ProviderOpenAI ProviderName = "openai"

	// ProviderGemini is the Google Gemini cloud API.
	ProviderGemini ProviderName = "gemini"

	// ProviderDeepSeek is the DeepSeek cloud API (OpenAI-compatible).
	ProviderDeepSeek ProviderName = "deepseek"
)

// IsValid returns true if the provider name is recognised.
func (p ProviderName) IsValid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI, ProviderGemini, ProviderDeepSeek:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p ProviderName) RequiresAPIKey() bool {
	return p == ProviderOpenAI || p == ProviderGemini || p == ProviderDeepSeek
}

// IsLocal returns true if this provider runs locally.
func (p ProviderName) IsLocal() bool {
	return p == ProviderOllama
}

// String returns the string representation.
func (p ProviderName) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p ProviderName) Description() string {
	switch p {
	case ProviderOllama:
		return "Ollama (local)"
	case ProviderOpenAI:
		return "OpenAI (cloud)"
	case ProviderGemini:
		return "Google Gemini (cloud)"
	case ProviderDeepSeek:
		return "DeepSeek (cloud)"
	default:
		return unknownDescription
	}
}
