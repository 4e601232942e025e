package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/routerchat/internal/chat"
	"github.com/ziadkadry99/routerchat/internal/embeddings"
	mcpserver "github.com/ziadkadry99/routerchat/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server on stdio for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio exposing ask, analyze_image, embed and link_metadata tools.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log := newLogger()
		defer log.Sync()

		var (
			composer *chat.Composer
			embedder embeddings.Embedder
		)
		if err := cfg.RequireAPIKey(); err != nil {
			log.Warn("starting without upstream access; completion tools will fail", zap.Error(err))
		} else {
			provider, err := createLLMProviderFromConfig(cfg)
			if err != nil {
				return err
			}
			composer = chat.NewComposer(provider, chatOptions(cfg), log)
			if embedder, err = createEmbedderFromConfig(cfg); err != nil {
				return err
			}
		}

		mcpserver.Version = Version
		log.Info("routerchat MCP server started on stdio", zap.String("model", cfg.Model))
		return mcpserver.NewServer(composer, embedder).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
