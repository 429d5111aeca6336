package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show configured providers and their availability",
	Long: `Probes every configured provider concurrently and reports whether it
is reachable. One provider being down never hides the status of the
others.`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	statuses := app.chat.ProbeAll(context.Background())

	for _, name := range app.registry.Names() {
		status, ok := statuses[string(name)]
		if !ok {
			continue
		}

		marker := "ok"
		if !status.Available {
			marker = fmt.Sprintf("unavailable (%v)", status.Err)
		}

		defaultTag := ""
		if name == app.registry.Default() {
			defaultTag = " (default)"
		}

		cmd.Printf("  %-10s model=%s%s: %s\n", status.Name, status.Model, defaultTag, marker)
	}
	return nil
}
