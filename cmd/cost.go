package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/routerchat/internal/config"
	"github.com/ziadkadry99/routerchat/internal/conversation"
	"github.com/ziadkadry99/routerchat/internal/llm"
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Estimate the cost of sending a conversation",
	Long:  `Performs a dry run that estimates prompt tokens and the expected API cost for each quality tier without making any calls.`,
	Args:  cobra.NoArgs,
	RunE:  runCost,
}

func init() {
	costCmd.Flags().StringP("conversation", "c", "", "conversation file (YAML or JSON)")
	costCmd.Flags().StringP("model", "m", "", "model override")
	costCmd.Flags().Int("output-tokens", 500, "assumed completion length in tokens")
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	outputTokens, _ := cmd.Flags().GetInt("output-tokens")
	if cfg.MaxTokens > 0 && cfg.MaxTokens < outputTokens {
		outputTokens = cfg.MaxTokens
	}

	msgs := conversation.Example()
	if path, _ := cmd.Flags().GetString("conversation"); path != "" {
		f, err := conversation.LoadFile(path)
		if err != nil {
			return err
		}
		msgs = f.Messages
		if f.Model != "" && !cmd.Flags().Changed("model") {
			cfg.Model = f.Model
		}
	}

	inputTokens := llm.EstimateMessageTokens(msgs)
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Cost Estimate")
	fmt.Fprintln(w, "=============")
	fmt.Fprintf(w, "  Messages:            %d\n", len(msgs))
	fmt.Fprintf(w, "  Prompt tokens:       ~%d\n", inputTokens)
	fmt.Fprintf(w, "  Completion tokens:   ~%d (assumed)\n", outputTokens)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-20s $%.6f  (model: %s)\n", "Current", llm.EstimateCost(cfg.Model, inputTokens, outputTokens), cfg.Model)
	if !llm.KnownModel(cfg.Model) {
		fmt.Fprintf(w, "  (no price known for %s)\n", cfg.Model)
	}
	fmt.Fprintln(w)

	// Show tier comparison.
	fmt.Fprintln(w, "  Tier Comparison:")
	fmt.Fprintln(w, "  ────────────────────────────────────────")
	for _, tier := range []config.QualityTier{config.QualityLite, config.QualityNormal, config.QualityMax} {
		preset := config.GetPreset(cfg.Provider, tier)

		marker := " "
		if tier == cfg.Quality {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-8s  ~$%.6f  (model: %s)\n", marker, tier, llm.EstimateCost(preset.Model, inputTokens, outputTokens), preset.Model)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  * = current configuration")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Provider: %s\n", cfg.Provider)
	fmt.Fprintf(w, "  Model:    %s\n", cfg.Model)
	fmt.Fprintf(w, "  Quality:  %s\n", cfg.Quality)

	return nil
}
