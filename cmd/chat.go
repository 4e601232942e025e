package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/routerchat/internal/chat"
	"github.com/ziadkadry99/routerchat/internal/config"
	"github.com/ziadkadry99/routerchat/internal/conversation"
	"github.com/ziadkadry99/routerchat/internal/llm"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Send a conversation and print the reply",
	Long: `Sends a conversation as one chat-completion request and prints the first
choice's message content to stdout.

Without --conversation the built-in three-message example is sent. Use
--export to write that example to a file as a starting point.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	addChatFlags(chatCmd)
	chatCmd.Flags().String("export", "", "write the conversation to this file instead of sending it")
	rootCmd.AddCommand(chatCmd)
}

// addChatFlags registers the flags shared by chat, ask and the root command.
func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("conversation", "c", "", "conversation file (YAML or JSON)")
	cmd.Flags().StringP("format", "f", "text", "output format: text, html, json")
	cmd.Flags().StringP("model", "m", "", "model override")
	cmd.Flags().BoolP("quiet", "q", false, "do not show a progress indicator")
}

func runChat(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("conversation")

	msgs := conversation.Example()
	var fileModel string
	if path != "" {
		f, err := conversation.LoadFile(path)
		if err != nil {
			return err
		}
		msgs, fileModel = f.Messages, f.Model
	}

	if export := flagString(cmd, "export"); export != "" {
		if err := (&conversation.File{Model: fileModel, Messages: msgs}).Save(export); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Conversation written to %s\n", export)
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if fileModel != "" && !cmd.Flags().Changed("model") {
		cfg.Model = fileModel
	}

	return sendConversation(cmd, cfg, msgs)
}

// sendConversation completes msgs and writes the reply to stdout. Nothing is
// written to stdout when the request fails.
func sendConversation(cmd *cobra.Command, cfg *config.Config, msgs []llm.Message) error {
	format, err := chat.ParseFormat(flagString(cmd, "format"))
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return err
	}

	log := newLogger()
	defer log.Sync()

	composer := chat.NewComposer(provider, chatOptions(cfg), log)

	// The reply is rendered into a buffer so the indicator is gone before
	// anything reaches stdout.
	var out bytes.Buffer
	err = waitFor(fmt.Sprintf("Waiting for %s", cfg.Model), quiet, func() error {
		return composer.Run(cmd.Context(), &out, msgs, format)
	})
	if err != nil {
		return err
	}
	_, err = out.WriteTo(cmd.OutOrStdout())
	return err
}

// flagString returns the value of a string flag, or "" if cmd has no such flag.
func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}
