package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a classifier provider based on configuration.
// An empty provider name yields ErrNoProvider.
func NewProvider(config Config) (Provider, error) {
	config = config.WithEnv()

	switch strings.ToLower(config.Provider) {
	case "zeroshot", "huggingface", "hf":
		return NewZeroShotProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, ErrNoProvider

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: zeroshot, openai, anthropic, ollama)", config.Provider)
	}
}
