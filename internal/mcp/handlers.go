package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/routerchat/internal/llm"
	"github.com/ziadkadry99/routerchat/internal/metadata"
)

// handleAsk sends the query, optionally preceded by a system message.
func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	var msgs []llm.Message
	if system := request.GetString("system", ""); system != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: query})

	return s.complete(ctx, msgs), nil
}

// handleAnalyzeImage sends the query and the image URL as one multi-part message.
func (s *Server) handleAnalyzeImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	imageURL, err := request.RequireString("image_url")
	if err != nil || imageURL == "" {
		return mcp.NewToolResultError("missing required parameter: image_url"), nil
	}

	msg := llm.Message{Role: llm.RoleUser, Parts: []llm.ContentPart{
		{Type: llm.PartText, Text: query},
		{Type: llm.PartImageURL, ImageURL: imageURL, Detail: request.GetString("detail", "")},
	}}
	return s.complete(ctx, []llm.Message{msg}), nil
}

func (s *Server) complete(ctx context.Context, msgs []llm.Message) *mcp.CallToolResult {
	if s.composer == nil {
		return mcp.NewToolResultError("no API key is configured")
	}
	resp, err := s.composer.Complete(ctx, msgs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("completion failed: %v", err))
	}
	return mcp.NewToolResultText(resp.Content)
}

// handleEmbed returns the embedding of text as a JSON array.
func (s *Server) handleEmbed(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil || text == "" {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding failed: %v", err)), nil
	}
	if len(vectors) == 0 {
		return mcp.NewToolResultError("embedding failed: no vector returned"), nil
	}

	data, err := json.Marshal(vectors[0])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding embedding: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleLinkMetadata fetches preview metadata for a page.
func (s *Server) handleLinkMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil || url == "" {
		return mcp.NewToolResultError("missing required parameter: url"), nil
	}

	m, err := metadata.Fetch(ctx, s.fetcher, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching metadata: %v", err)), nil
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding metadata: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
