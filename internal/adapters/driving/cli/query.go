package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

var (
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the document collection",
	Long: `Embeds the query and returns the most similar passages from the
collection, ranked by cosine similarity. No AI provider is involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of passages to return (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	passages, err := app.retrieval.Retrieve(context.Background(), args[0], queryTopK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputPassagesJSON(cmd, passages)
	}
	return outputPassagesText(cmd, passages)
}

func outputPassagesJSON(cmd *cobra.Command, passages []domain.Passage) error {
	data, err := json.MarshalIndent(passages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputPassagesText(cmd *cobra.Command, passages []domain.Passage) error {
	if len(passages) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, p := range passages {
		cmd.Printf("  [%d] %s #%d (%.3f)\n", i+1, p.SourceID, p.ChunkIndex, p.Similarity)
		cmd.Printf("      %s\n", p.Content)
		cmd.Println()
	}
	return nil
}
