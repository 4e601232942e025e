// Package chat composes completion requests from a conversation, sends them
// through an llm.Provider, and writes the first choice's content.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ziadkadry99/routerchat/internal/conversation"
	"github.com/ziadkadry99/routerchat/internal/llm"
	"github.com/ziadkadry99/routerchat/internal/render"
)

// Format selects how Run writes a completion.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatHTML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of text, html, json", s)
	}
}

// Options are the request parameters applied to every completion.
type Options struct {
	Model       string
	Headers     map[string]string
	MaxTokens   int
	Temperature float64
}

// Composer sends conversations to a provider.
type Composer struct {
	provider llm.Provider
	opts     Options
	logger   *zap.Logger
}

// NewComposer creates a Composer. A nil logger disables logging.
func NewComposer(provider llm.Provider, opts Options, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{provider: provider, opts: opts, logger: logger}
}

// Complete validates messages and sends them as one completion request.
func (c *Composer) Complete(ctx context.Context, messages []llm.Message) (*llm.CompletionResponse, error) {
	if err := conversation.Validate(messages); err != nil {
		return nil, fmt.Errorf("invalid conversation: %w", err)
	}
	if !conversation.Alternates(messages) {
		c.logger.Debug("conversation does not alternate user and assistant turns",
			zap.Int("message_count", len(messages)),
		)
	}

	req := llm.CompletionRequest{
		Model:       c.opts.Model,
		Messages:    messages,
		Headers:     c.opts.Headers,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	}

	c.logger.Debug("sending completion request",
		zap.String("provider", c.provider.Name()),
		zap.String("model", c.opts.Model),
		zap.Int("message_count", len(messages)),
		zap.Int("estimated_prompt_tokens", llm.EstimateMessageTokens(messages)),
	)

	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		c.logger.Debug("completion failed",
			zap.String("kind", llm.KindName(err)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s completion failed: %w", c.provider.Name(), err)
	}

	c.logger.Debug("completion received",
		zap.String("id", resp.ID),
		zap.String("model", resp.Model),
		zap.String("finish_reason", resp.FinishReason),
		zap.Int("choices", resp.Choices),
		zap.Int("prompt_tokens", resp.InputTokens),
		zap.Int("completion_tokens", resp.OutputTokens),
		zap.Float64("estimated_cost_usd", llm.EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens)),
	)
	return resp, nil
}

// Run completes messages and writes the result to w in the given format.
// Nothing is written if the completion fails.
func (c *Composer) Run(ctx context.Context, w io.Writer, messages []llm.Message, format Format) error {
	resp, err := c.Complete(ctx, messages)
	if err != nil {
		return err
	}
	return Write(w, resp, format)
}

// Output is the JSON form of a completion.
type Output struct {
	ID           string `json:"id,omitempty"`
	Model        string `json:"model,omitempty"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        Usage  `json:"usage"`
}

// Usage reports token counts.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Write formats resp onto w.
func Write(w io.Writer, resp *llm.CompletionResponse, format Format) error {
	switch format {
	case FormatHTML:
		html, err := render.HTML(resp.Content)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(Output{
			ID:           resp.ID,
			Model:        resp.Model,
			Content:      resp.Content,
			FinishReason: resp.FinishReason,
			Usage: Usage{
				PromptTokens:     resp.InputTokens,
				CompletionTokens: resp.OutputTokens,
			},
		})

	default:
		_, err := fmt.Fprintln(w, resp.Content)
		return err
	}
}
