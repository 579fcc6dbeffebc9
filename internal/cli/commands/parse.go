package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vrusso/watchlog/pkg/config"
	"github.com/vrusso/watchlog/pkg/output"
	"github.com/vrusso/watchlog/pkg/parser"
	"github.com/vrusso/watchlog/pkg/store"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Config  string
	DB      string
	Output  string
	Strict  bool
	Verbose bool
	Quiet   bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <log-file...>",
		Short: "Parse watch logs into a store",
		Long: `Parse one or more watch log files into structured records.

Entries go to an in-memory store by default, or to a SQLite database
with --db. Bad lines are reported and skipped unless --strict is set.

Exit codes:
  0 - Every line ingested
  1 - Bad lines found (non-strict mode)
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file path")
	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database path (default: in-memory)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Abort on the first bad line")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List every parsed entry")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}
	applyParseFlags(cfg, opts)

	st, closeStore, err := openStore(cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	result, err := runSession(ctx, args, st, cfg.Strict)
	if err != nil {
		return err
	}

	report, err := output.NewReport(result, st)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	formatter, err := createFormatter(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if report.HasIssues() {
		ExitCode = 1
	}
	return nil
}

// loadConfig loads the config file when one is named, defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func applyParseFlags(cfg *config.Config, opts *ParseOptions) {
	if opts.DB != "" {
		cfg.Database = opts.DB
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Strict {
		cfg.Strict = true
	}
}

// openStore opens the configured store. The returned func releases it.
func openStore(dbPath string) (store.Store, func(), error) {
	if dbPath == "" {
		return store.NewMemory(), func() {}, nil
	}

	st, err := store.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return st, func() { _ = st.Close() }, nil
}

// runSession expands the file arguments and drives a full parse run.
func runSession(ctx context.Context, args []string, st store.Store, strict bool) (*parser.Result, error) {
	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return nil, fmt.Errorf("expanding log files: %w", err)
	}

	src := parser.NewFileSource(files)
	defer src.Close()

	sess := parser.NewSession(st, parser.WithStrict(strict))
	result, err := sess.Run(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return result, nil
}

func createFormatter(format string, opts output.FormatOptions) (output.Formatter, error) {
	switch format {
	case "text":
		return output.NewTextFormatter(opts), nil
	case "json":
		return output.NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}
