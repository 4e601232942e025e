package llm

const (
	// OpenRouterBaseURL is the OpenAI-compatible API root of OpenRouter.
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	// DefaultOpenRouterModel is used when neither the request nor the
	// provider names a model.
	DefaultOpenRouterModel = "perplexity/sonar"
)

// NewOpenRouterProvider creates a provider for the OpenRouter API.
func NewOpenRouterProvider(opts Options) *CompatProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = OpenRouterBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultOpenRouterModel
	}
	return NewCompatProvider("openrouter", opts)
}
