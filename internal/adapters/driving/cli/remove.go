package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [source]...",
	Short: "Remove documents from the collection",
	Long: `Deletes all indexed chunks for each named source. Removing a source
that is not in the collection is not an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, sourceID := range args {
		removed, err := app.ingest.Remove(ctx, sourceID)
		if err != nil {
			return fmt.Errorf("removing %s: %w", sourceID, err)
		}
		if removed == 0 {
			cmd.Printf("%s: not in collection\n", sourceID)
			continue
		}
		cmd.Printf("Removed %s (%d chunks)\n", sourceID, removed)
	}
	return nil
}
