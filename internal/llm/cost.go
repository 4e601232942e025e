package llm

// modelPricing holds per-model pricing in USD per 1M tokens.
type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// priceTable maps OpenRouter model identifiers to their pricing. Perplexity
// models also bill a per-request search fee, which is not included here.
var priceTable = map[string]modelPricing{
	// Perplexity models
	"perplexity/sonar":               {InputPerMillion: 1.00, OutputPerMillion: 1.00},
	"perplexity/sonar-pro":           {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	"perplexity/sonar-reasoning":     {InputPerMillion: 1.00, OutputPerMillion: 5.00},
	"perplexity/sonar-reasoning-pro": {InputPerMillion: 2.00, OutputPerMillion: 8.00},

	// OpenAI models
	"openai/gpt-4o":      {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"openai/gpt-4o-mini": {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-4o":             {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini":        {InputPerMillion: 0.15, OutputPerMillion: 0.60},

	// Embeddings
	"google/gemini-embedding-001": {InputPerMillion: 0.15, OutputPerMillion: 0},
}

// EstimateCost returns the estimated cost in USD for the given model and token counts.
// Returns 0 if the model is not found in the price table.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := priceTable[model]
	if !ok {
		return 0
	}

	inputCost := float64(inputTokens) / 1_000_000.0 * pricing.InputPerMillion
	outputCost := float64(outputTokens) / 1_000_000.0 * pricing.OutputPerMillion
	return inputCost + outputCost
}

// KnownModel reports whether model has an entry in the price table.
func KnownModel(model string) bool {
	_, ok := priceTable[model]
	return ok
}

// EstimateTokens provides a rough token count estimation for the given text.
// Uses the approximation of 1 token per 4 bytes.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}

// EstimateMessageTokens estimates the prompt tokens of a message list. Image
// parts are counted at a flat rate since their size is not known locally.
func EstimateMessageTokens(msgs []Message) int {
	const perMessage = 4
	const perImage = 85

	total := 0
	for _, m := range msgs {
		total += perMessage
		if !m.IsMultipart() {
			total += EstimateTokens(m.Content)
			continue
		}
		for _, p := range m.Parts {
			if p.Type == PartImageURL {
				total += perImage
				continue
			}
			total += EstimateTokens(p.Text)
		}
	}
	return total
}
