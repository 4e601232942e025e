package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed [text...]",
	Short: "Print embedding vectors for one or more texts",
	Long:  `Requests float embeddings for each argument from the configured embedding model and prints them as JSON.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEmbed,
}

func init() {
	embedCmd.Flags().BoolP("quiet", "q", false, "do not show a progress indicator")
	rootCmd.AddCommand(embedCmd)
}

type embedOutput struct {
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions"`
	Embeddings [][]float32 `json:"embeddings"`
}

func runEmbed(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	var vectors [][]float32
	err = waitFor(fmt.Sprintf("Embedding with %s", embedder.Name()), quiet, func() error {
		var err error
		vectors, err = embedder.Embed(cmd.Context(), args)
		return err
	})
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	out := embedOutput{Model: embedder.Name(), Embeddings: vectors}
	if len(vectors) > 0 {
		out.Dimensions = len(vectors[0])
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
