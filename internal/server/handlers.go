package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/routerchat/internal/chat"
	"github.com/ziadkadry99/routerchat/internal/conversation"
	"github.com/ziadkadry99/routerchat/internal/llm"
	"github.com/ziadkadry99/routerchat/internal/metadata"
)

type chatRequest struct {
	Query   string              `json:"query"`
	History []conversation.Turn `json:"history"`
}

type chatMessage struct {
	Role    llm.Role `json:"role"`
	Content string   `json:"content"`
}

type chatResponse struct {
	ID      string      `json:"id"`
	Model   string      `json:"model,omitempty"`
	Message chatMessage `json:"message"`
	Usage   chat.Usage  `json:"usage"`
}

type embeddingRequest struct {
	Input embeddingInput `json:"input"`
}

// embeddingInput accepts either a single string or an array of strings.
type embeddingInput []string

func (in *embeddingInput) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*in = nil
		} else {
			*in = embeddingInput{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("input must be a string or an array of strings")
	}
	*in = many
	return nil
}

// embeddingResponse keeps the first vector under embedding; embeddings holds
// one vector per input in input order.
type embeddingResponse struct {
	Embedding  []float32   `json:"embedding"`
	Embeddings [][]float32 `json:"embeddings"`
	Model      string      `json:"model"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func (s *Server) handleChatPost(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter is required"})
		return
	}
	s.complete(w, r, conversation.BuildMessages(req.History, req.Query))
}

func (s *Server) handleChatGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter is required"})
		return
	}
	s.complete(w, r, conversation.BuildMessages(nil, query))
}

// handleAnalyzeImage sends the query as a single user message. When
// image_url is given the message carries the text and the image URL as
// separate content parts.
func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter is required"})
		return
	}

	msg := llm.Message{Role: llm.RoleUser, Content: query}
	if imageURL := r.URL.Query().Get("image_url"); imageURL != "" {
		msg = llm.Message{Role: llm.RoleUser, Parts: []llm.ContentPart{
			{Type: llm.PartText, Text: query},
			{Type: llm.PartImageURL, ImageURL: imageURL, Detail: r.URL.Query().Get("detail")},
		}}
	}
	s.complete(w, r, []llm.Message{msg})
}

func (s *Server) complete(w http.ResponseWriter, r *http.Request, msgs []llm.Message) {
	if s.composer == nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: s.cfg.MissingKeyHint})
		return
	}

	resp, err := s.composer.Complete(r.Context(), msgs)
	if err != nil {
		s.writeUpstreamError(w, "Failed to process query", err)
		return
	}

	id := resp.ID
	if id == "" {
		id = uuid.NewString()
	}
	role := resp.Role
	if role == "" {
		role = llm.RoleAssistant
	}
	s.writeJSON(w, http.StatusOK, chatResponse{
		ID:      id,
		Model:   resp.Model,
		Message: chatMessage{Role: role, Content: resp.Content},
		Usage: chat.Usage{
			PromptTokens:     resp.InputTokens,
			CompletionTokens: resp.OutputTokens,
		},
	})
}

func (s *Server) handleEmbedding(w http.ResponseWriter, r *http.Request) {
	var req embeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Input) == 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "input parameter is required"})
		return
	}
	for _, text := range req.Input {
		if text == "" {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "input must not contain empty strings"})
			return
		}
	}
	if s.embedder == nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: s.cfg.MissingKeyHint})
		return
	}

	vectors, err := s.embedder.Embed(r.Context(), req.Input)
	if err != nil {
		s.writeUpstreamError(w, "Failed to create embedding", err)
		return
	}
	if len(vectors) == 0 {
		s.writeUpstreamError(w, "Failed to create embedding", &llm.Error{Kind: llm.ErrEmptyResponse, Err: errors.New("no embedding returned")})
		return
	}
	s.writeJSON(w, http.StatusOK, embeddingResponse{Embedding: vectors[0], Embeddings: vectors, Model: s.embedder.Name()})
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url parameter is required"})
		return
	}
	if _, err := metadata.NormalizeURL(raw); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid url", Details: err.Error()})
		return
	}

	m, err := metadata.Fetch(r.Context(), s.fetcher, raw)
	if err != nil {
		s.logger.Warn("metadata fetch failed", zap.String("url", raw), zap.Error(err))
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to fetch metadata", Details: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

// writeUpstreamError answers 502 for classified upstream failures and 500
// for anything else.
func (s *Server) writeUpstreamError(w http.ResponseWriter, msg string, err error) {
	kind := llm.KindName(err)
	s.logger.Error(msg, zap.String("kind", kind), zap.Error(err))

	status := http.StatusBadGateway
	if kind == "" {
		status = http.StatusInternalServerError
	}
	s.writeJSON(w, status, errorResponse{Error: msg, Details: err.Error(), Kind: kind})
}

// writeJSON logs encode failures, usually a disconnected client, at debug
// level.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("writing response failed", zap.Int("status", status), zap.Error(err))
	}
}
