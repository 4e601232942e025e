package llm

// OpenAIBaseURL is the root of the OpenAI API.
const OpenAIBaseURL = "https://api.openai.com/v1"

// NewOpenAIProvider creates a provider for the OpenAI Chat Completions API.
// OpenRouter ranking headers are meaningless there and are dropped.
func NewOpenAIProvider(opts Options) *CompatProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = OpenAIBaseURL
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	opts.Headers = nil
	return NewCompatProvider("openai", opts)
}
