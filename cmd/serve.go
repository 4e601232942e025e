package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/routerchat/internal/config"
	"github.com/ziadkadry99/routerchat/internal/embeddings"
	"github.com/ziadkadry99/routerchat/internal/llm"
	"github.com/ziadkadry99/routerchat/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat HTTP API",
	Long: `Starts an HTTP server exposing /api/chat, /api/analyze-image,
/api/embedding and /api/metadata. Without an API key the server still starts;
the routes that call the upstream service answer 500.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config, 8080)")
	serveCmd.Flags().Bool("allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("allow-all") {
		cfg.Server.AllowAll, _ = cmd.Flags().GetBool("allow-all")
	}

	log := newLogger()
	defer log.Sync()

	var (
		provider llm.Provider
		embedder embeddings.Embedder
	)
	if err := cfg.RequireAPIKey(); err != nil {
		log.Warn("starting without upstream access", zap.Error(err))
	} else {
		if provider, err = createLLMProviderFromConfig(cfg); err != nil {
			return err
		}
		provider = llm.NewRateLimitedProvider(provider, cfg.Server.RateLimitRPM)
		if embedder, err = createEmbedderFromConfig(cfg); err != nil {
			return err
		}
	}

	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		AllowAll:       cfg.Server.AllowAll,
		Chat:           chatOptions(cfg),
		RequestTimeout: cfg.Timeout + 30*time.Second,
		MissingKeyHint: config.APIKeyEnvVar(cfg.Provider) + " is not configured",
	}, provider, embedder, log)

	// Graceful shutdown.
	ctx := cmd.Context()
	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("routerchat server starting",
		zap.String("version", Version),
		zap.Int("port", cfg.Server.Port),
		zap.String("provider", string(cfg.Provider)),
		zap.String("model", cfg.Model),
		zap.Int("rate_limit_rpm", cfg.Server.RateLimitRPM),
	)
	return srv.Start()
}
