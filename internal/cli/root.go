// Package cli provides the command-line interface for watchlog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vrusso/watchlog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "watchlog",
		Short: "Ingest plain-text anime watch logs",
		Long: `Watchlog parses a line-oriented watch log into structured records.

A log is a sequence of directives, one per line:
  - Date header:   10/02/2022            // optional comment
  - Title header:  Re:Zero:              // optional comment
  - Session line:  23:00 - 23:40 12 {Gary, Amim}

Session lines inherit the current date and show from the headers above them,
and sessions crossing midnight roll the date forward automatically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
