package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vrusso/watchlog/pkg/output"
	"github.com/vrusso/watchlog/pkg/store"
)

// StatsOptions holds command-line options for the stats command.
type StatsOptions struct {
	DB string
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats [log-file...]",
		Short: "Show per-show watching statistics",
		Long: `Show a per-show table of sessions, watch time and co-watchers.

Reads log files given as arguments, or an existing SQLite database
with --db.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "Read from a SQLite database instead of log files")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, opts *StatsOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.DB == "" && len(args) == 0 {
		return fmt.Errorf("nothing to report: give log files or --db")
	}

	var st store.Store
	if opts.DB != "" {
		db, err := store.OpenSQLite(opts.DB)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()
		st = db
	} else {
		st = store.NewMemory()
	}

	var badLines int
	if len(args) > 0 {
		result, err := runSession(ctx, args, st, false)
		if err != nil {
			return err
		}
		badLines = len(result.Diagnostics)
	}

	shows, err := st.Shows()
	if err != nil {
		return fmt.Errorf("listing shows: %w", err)
	}

	rows := make([]statsRow, 0, len(shows))
	for _, show := range shows {
		entries, err := st.Entries(show.ID)
		if err != nil {
			return fmt.Errorf("listing entries for %q: %w", show.Title, err)
		}

		row := statsRow{title: show.Title, sessions: len(entries)}
		seen := make(map[string]bool)
		for _, e := range entries {
			row.watchTime += e.Duration()
			if e.Company == nil {
				continue
			}
			for _, name := range e.Company.Names {
				if !seen[name] {
					seen[name] = true
					row.coWatchers = append(row.coWatchers, name)
				}
			}
		}
		rows = append(rows, row)
	}

	fmt.Println(renderStatsTable(rows))

	if badLines > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d line(s) could not be parsed\n", badLines)
		ExitCode = 1
	}
	return nil
}

type statsRow struct {
	title      string
	sessions   int
	watchTime  time.Duration
	coWatchers []string
}

func renderStatsTable(rows []statsRow) string {
	tw := table.NewWriter()
	if isTerminal(os.Stdout.Fd()) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"Show", "Sessions", "Watch time", "Watched with"})

	var totalSessions int
	var totalTime time.Duration
	for _, row := range rows {
		tw.AppendRow(table.Row{
			row.title,
			row.sessions,
			output.FormatDuration(row.watchTime),
			strings.Join(row.coWatchers, ", "),
		})
		totalSessions += row.sessions
		totalTime += row.watchTime
	}
	tw.AppendFooter(table.Row{"Total", totalSessions, output.FormatDuration(totalTime), ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
