package llm

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// CompatProvider implements Provider against any OpenAI-compatible Chat
// Completions endpoint.
type CompatProvider struct {
	name   string
	client *openai.Client
	model  string
}

// NewClientConfig builds a go-openai client configuration from opts. The
// returned config sends opts.Headers on every request and bounds each request
// by opts.Timeout.
func NewClientConfig(opts Options) openai.ClientConfig {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cfg.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: newHeaderTransport(http.DefaultTransport, opts.Headers),
	}
	return cfg
}

// NewCompatProvider creates a provider named name for the endpoint in opts.
func NewCompatProvider(name string, opts Options) *CompatProvider {
	return &CompatProvider{
		name:   name,
		client: openai.NewClientWithConfig(NewClientConfig(opts)),
		model:  opts.Model,
	}
}

func (p *CompatProvider) Name() string {
	return p.name
}

func (p *CompatProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%s: no messages to send", p.name)
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toChatMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}

	resp, err := p.client.CreateChatCompletion(WithHeaders(ctx, req.Headers), apiReq)
	if err != nil {
		return nil, Classify(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &Error{Kind: ErrEmptyResponse, Err: fmt.Errorf("%s returned no choices", p.name)}
	}

	first := resp.Choices[0]
	return &CompletionResponse{
		ID:           resp.ID,
		Content:      first.Message.Content,
		Role:         Role(first.Message.Role),
		Model:        resp.Model,
		FinishReason: string(first.FinishReason),
		Choices:      len(resp.Choices),
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func toChatMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, msg := range msgs {
		cm := openai.ChatCompletionMessage{Role: string(msg.Role)}
		if msg.IsMultipart() {
			cm.MultiContent = toChatParts(msg.Parts)
		} else {
			cm.Content = msg.Content
		}
		out = append(out, cm)
	}
	return out
}

func toChatParts(parts []ContentPart) []openai.ChatMessagePart {
	out := make([]openai.ChatMessagePart, 0, len(parts))
	for _, part := range parts {
		switch part.Type {
		case PartImageURL:
			out = append(out, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    part.ImageURL,
					Detail: openai.ImageURLDetail(part.Detail),
				},
			})
		default:
			out = append(out, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: part.Text,
			})
		}
	}
	return out
}
