package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	weblog "github.com/deepnav/webnav/internal/log"
)

// NewRootCmd creates the root command for webnav.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webnav",
		Short: "Deep web navigation and content extraction tool",
		Long: `webnav navigates websites in depth: starting from a seed URL it extracts
structured content from each page, scores it for quality, and follows the
most promising links until a depth or page budget is reached.

Results are saved as JSON artifacts and recorded in a local SQLite history.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewNavigateCmd())
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity. All output
// goes through the redacting handler so cookies and auth headers from site
// configs never reach the logs.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return weblog.NewLogger(os.Stderr, level)
}
