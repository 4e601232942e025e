package embeddings

import "context"

// Embedder turns texts into vectors, typically through OpenRouter's
// OpenAI-compatible /embeddings endpoint.
type Embedder interface {
	// Embed returns one vector per text, in the order of texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the embedding model identifier.
	Name() string
}
