// Package mcp exposes the chat composer, the embedder and link metadata as
// Model Context Protocol tools over stdio.
package mcp

import (
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/routerchat/internal/chat"
	"github.com/ziadkadry99/routerchat/internal/embeddings"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes chat tools.
type Server struct {
	composer *chat.Composer
	embedder embeddings.Embedder
	fetcher  *http.Client
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server. embedder may be nil, in which case the
// embed tool is not registered.
func NewServer(composer *chat.Composer, embedder embeddings.Embedder) *Server {
	s := &Server{
		composer: composer,
		embedder: embedder,
		fetcher:  &http.Client{Timeout: 15 * time.Second},
	}

	s.mcp = server.NewMCPServer(
		"routerchat",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(askTool, s.handleAsk)
	s.mcp.AddTool(analyzeImageTool, s.handleAnalyzeImage)
	s.mcp.AddTool(linkMetadataTool, s.handleLinkMetadata)
	if s.embedder != nil {
		s.mcp.AddTool(embedTool, s.handleEmbed)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
