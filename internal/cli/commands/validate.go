package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrusso/watchlog/pkg/store"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <log-file...>",
		Short: "Check watch logs without storing anything",
		Long: `Classify every line of the given watch logs and report problems.

Checks:
  - Line shape (date, title, session)
  - Time, episode and company tokens
  - Ordering (dates strictly increasing, sessions after a date and title)`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := runSession(ctx, args, store.NewMemory(), false)
	if err != nil {
		return err
	}

	if result.Clean() {
		fmt.Printf("Log valid: %d line(s), %d entr(y/ies)\n", result.Lines, len(result.Entries))
		return nil
	}

	fmt.Printf("Found %d bad line(s):\n", len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		fmt.Printf("  %s\n", d)
	}
	ExitCode = 1
	return nil
}
