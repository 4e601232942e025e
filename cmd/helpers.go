package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/routerchat/internal/chat"
	"github.com/ziadkadry99/routerchat/internal/config"
	"github.com/ziadkadry99/routerchat/internal/embeddings"
	"github.com/ziadkadry99/routerchat/internal/llm"
	"github.com/ziadkadry99/routerchat/internal/logger"
	"github.com/ziadkadry99/routerchat/internal/progress"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `routerchat init` to create a config file", err)
	}
	if f := cmd.Flags().Lookup("model"); f != nil && f.Changed {
		cfg.Model = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger() *zap.Logger {
	return logger.New(verbose)
}

// providerOptions maps the config onto connection settings shared by the
// chat provider and the embedder. The site URL and name become the
// HTTP-Referer and X-Title headers; empty values are never sent.
func providerOptions(cfg *config.Config) llm.Options {
	headers := make(map[string]string, len(cfg.Headers)+2)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if cfg.SiteURL != "" {
		headers[llm.HeaderReferer] = cfg.SiteURL
	}
	if cfg.SiteName != "" {
		headers[llm.HeaderTitle] = cfg.SiteName
	}
	return llm.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Headers: headers,
		Timeout: cfg.Timeout,
	}
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	return llm.NewProvider(string(cfg.Provider), providerOptions(cfg))
}

// createEmbedderFromConfig creates an embedder on the same endpoint as the
// chat provider.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	opts := providerOptions(cfg)
	if cfg.Provider == config.ProviderOpenAI {
		opts.Headers = nil
		if opts.BaseURL == "" {
			opts.BaseURL = llm.OpenAIBaseURL
		}
	}

	model := cfg.EmbeddingModel
	if model == "" {
		model = config.GetPreset(cfg.Provider, cfg.Quality).EmbeddingModel
	}
	return embeddings.NewCompatEmbedder(opts, model), nil
}

func chatOptions(cfg *config.Config) chat.Options {
	return chat.Options{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// waitFor runs fn while a wait indicator is shown on stderr.
func waitFor(description string, quiet bool, fn func() error) error {
	ind := progress.NewIndicator(os.Stderr, quiet)
	ind.Start(description)
	err := fn()
	ind.Stop()
	return err
}
