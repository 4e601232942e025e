package embeddings

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ziadkadry99/routerchat/internal/llm"
)

const maxBatchSize = 100

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "google/gemini-embedding-001"

// CompatEmbedder generates embeddings through an OpenAI-compatible
// /embeddings endpoint such as OpenRouter's.
type CompatEmbedder struct {
	client *openai.Client
	model  string
}

// NewCompatEmbedder creates an embedder that shares the connection settings
// (base URL, key, headers, timeout) of a chat provider.
func NewCompatEmbedder(opts llm.Options, model string) *CompatEmbedder {
	if opts.BaseURL == "" {
		opts.BaseURL = llm.OpenRouterBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &CompatEmbedder{
		client: openai.NewClientWithConfig(llm.NewClientConfig(opts)),
		model:  model,
	}
}

func (e *CompatEmbedder) Name() string {
	return e.model
}

func (e *CompatEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	allEmbeddings := make([][]float32, len(texts))

	// Batch up to maxBatchSize texts per API call
	for i := 0; i < len(texts); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input:          batch,
			Model:          openai.EmbeddingModel(e.model),
			EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		})
		if err != nil {
			return nil, fmt.Errorf("embedding request failed: %w", llm.Classify(err))
		}

		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("embedding request failed: %w", &llm.Error{
				Kind: llm.ErrProtocol,
				Err:  fmt.Errorf("got %d embeddings, expected %d", len(resp.Data), len(batch)),
			})
		}

		// Data may arrive in any order; Index is relative to the batch.
		for _, emb := range resp.Data {
			if emb.Index < 0 || emb.Index >= len(batch) || allEmbeddings[i+emb.Index] != nil {
				return nil, fmt.Errorf("embedding request failed: %w", &llm.Error{
					Kind: llm.ErrProtocol,
					Err:  fmt.Errorf("unexpected embedding index %d", emb.Index),
				})
			}
			allEmbeddings[i+emb.Index] = emb.Embedding
		}
	}

	return allEmbeddings, nil
}
