package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderLMStudio = "lmstudio"
)

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderOpenAI:
		return NewOpenAIClient(model, baseURL)
	case ProviderLMStudio, "lm-studio":
		if baseURL == "" {
			baseURL = defaultLMStudioBaseURL
		}
		return NewOpenAIClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
