package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/routerchat/internal/chat"
	"github.com/ziadkadry99/routerchat/internal/embeddings"
	"github.com/ziadkadry99/routerchat/internal/llm"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)

	// Chat is applied to every completion the API sends.
	Chat chat.Options

	// RequestTimeout bounds each API request, upstream call included.
	RequestTimeout time.Duration

	// MissingKeyHint is reported with a 500 when no provider is configured,
	// e.g. "OPENROUTER_API_KEY is not configured".
	MissingKeyHint string
}

// Server exposes the chat composer, the embedder and link metadata over HTTP.
type Server struct {
	cfg        Config
	composer   *chat.Composer
	embedder   embeddings.Embedder
	fetcher    *http.Client
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. provider and embedder may be nil when no API key is
// configured; the routes that need them then answer 500.
func New(cfg Config, provider llm.Provider, embedder embeddings.Embedder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 2 * llm.DefaultTimeout
	}
	if cfg.MissingKeyHint == "" {
		cfg.MissingKeyHint = "API key is not configured"
	}

	s := &Server{
		cfg:      cfg,
		embedder: embedder,
		fetcher:  &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
	if provider != nil {
		s.composer = chat.NewComposer(provider, cfg.Chat, logger)
	}

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChatPost)
		r.Get("/chat", s.handleChatGet)
		r.Get("/analyze-image", s.handleAnalyzeImage)
		r.Post("/embedding", s.handleEmbedding)
		r.Get("/metadata", s.handleMetadata)
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured port and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("routerchat server listening", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
