package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/routerchat/internal/conversation"
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a single question, optionally continuing earlier exchanges",
	Long: `Sends query as a user message and prints the reply. With --history, earlier
exchanges ([{query, message: {content}}, ...]) are sent first as alternating
user and assistant messages.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("history", "", "file of earlier exchanges (YAML or JSON)")
	askCmd.Flags().StringP("format", "f", "text", "output format: text, html, json")
	askCmd.Flags().StringP("model", "m", "", "model override")
	askCmd.Flags().BoolP("quiet", "q", false, "do not show a progress indicator")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	var history []conversation.Turn
	if path, _ := cmd.Flags().GetString("history"); path != "" {
		turns, err := conversation.LoadHistory(path)
		if err != nil {
			return err
		}
		history = turns
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return sendConversation(cmd, cfg, conversation.BuildMessages(history, args[0]))
}
