package llm

import (
	"fmt"
)

// NewProvider creates a new LLM provider based on the given provider type.
// Supported provider types: "openrouter", "openai".
func NewProvider(providerType string, opts Options) (Provider, error) {
	switch providerType {
	case "openrouter", "":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
		}
		return NewOpenRouterProvider(opts), nil

	case "openai":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(opts), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
