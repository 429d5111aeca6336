package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nimbleworks/dochat/internal/core/ports/driving"
)

var (
	askProvider string
	askNoRAG    bool
	askTopK     int
	askSystem   string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question about your documents",
	Long: `Retrieves the most relevant passages for the question, sends them with
the question to the selected provider, and prints the answer together
with the sources used. Use --no-rag to skip retrieval.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askProvider, "provider", "p", "", "provider to use (default from config)")
	askCmd.Flags().BoolVar(&askNoRAG, "no-rag", false, "answer without document context")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of passages to retrieve (default from config)")
	askCmd.Flags().StringVar(&askSystem, "system", "", "override the system prompt")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	answer, err := app.chat.Answer(context.Background(), driving.AnswerRequest{
		Message:      args[0],
		Provider:     askProvider,
		UseRAG:       !askNoRAG,
		SystemPrompt: askSystem,
		TopK:         askTopK,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Printf("Sources: %s\n", strings.Join(answer.Sources, ", "))
	}
	return nil
}
