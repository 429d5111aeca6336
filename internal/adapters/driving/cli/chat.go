package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/nimbleworks/dochat/internal/adapters/driving/tui"
)

var (
	chatProvider string
	chatNoRAG    bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launches the interactive terminal chat. Each message is answered with
document context retrieved from the collection; sources are shown under
each answer. History stays within the session and is never persisted.

Controls:
  enter    Send message
  esc      Quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatProvider, "provider", "p", "", "provider to use (default from config)")
	chatCmd.Flags().BoolVar(&chatNoRAG, "no-rag", false, "chat without document context")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	// Panic recovery keeps a stack trace readable after the alt screen
	// is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	return tui.NewApp(app.chat, chatProvider, !chatNoRAG).Run()
}
