package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

var ingestFormat string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]...",
	Short: "Add documents to the collection",
	Long: `Extracts text from each file, splits it into chunks, embeds them and
stores them in the local index. Re-ingesting a file replaces its
previous chunks. The format is inferred from the file extension unless
--format is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFormat, "format", "f", "", "override format detection (text, markdown, html, csv, json, pdf, docx)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, path := range args {
		format, err := resolveFormat(path)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		sourceID := filepath.Base(path)
		count, err := app.ingest.Ingest(ctx, sourceID, raw, format)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		cmd.Printf("Ingested %s (%d chunks)\n", sourceID, count)
	}
	return nil
}

// resolveFormat applies the --format override or infers from the path.
func resolveFormat(path string) (domain.Format, error) {
	if ingestFormat != "" {
		format := domain.Format(ingestFormat)
		if !format.IsValid() {
			return "", fmt.Errorf("%w: unknown format %q", domain.ErrUnsupportedFormat, ingestFormat)
		}
		return format, nil
	}

	format, ok := domain.FormatFromPath(path)
	if !ok {
		return "", fmt.Errorf("%w: cannot infer format of %s, use --format", domain.ErrUnsupportedFormat, path)
	}
	return format, nil
}
