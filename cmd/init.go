package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/routerchat/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize routerchat configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the provider, quality tier and ranking metadata, and writes the config file (.routerchat.yml by default). The API key is never written; set OPENROUTER_API_KEY instead.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
