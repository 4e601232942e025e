package llm

import (
	"context"
	"time"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// Options configures an OpenAI-compatible provider.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// Headers are sent with every request. Empty values are skipped.
	Headers map[string]string
	Timeout time.Duration
}

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 60 * time.Second
