package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "watchlog: %d lines, %d entries, %d shows, %d bad lines\n",
		report.Summary.LinesProcessed,
		report.Summary.EntriesParsed,
		report.Summary.ShowsSeen,
		report.Summary.BadLines)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Watchlog Report ===")
	fmt.Fprintln(w)

	for _, show := range report.Shows {
		f.formatShow(&show, w)
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintf(w, "Bad lines: %d\n", len(report.Diagnostics))
		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "  - %s:%d: %s\n", d.Source, d.Line, d.Message)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d lines processed, %d entries, %d shows, %d bad lines\n",
		report.Summary.LinesProcessed,
		report.Summary.EntriesParsed,
		report.Summary.ShowsSeen,
		report.Summary.BadLines)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) formatShow(show *ShowReport, w io.Writer) {
	fmt.Fprintf(w, "%s\n", show.Title)
	fmt.Fprintf(w, "  Sessions: %d, watch time: %s\n", show.Sessions, FormatDuration(show.WatchTime))
	if len(show.CoWatchers) > 0 {
		fmt.Fprintf(w, "  Watched with: %s\n", strings.Join(show.CoWatchers, ", "))
	}

	if f.opts.Verbose {
		for _, e := range show.Entries {
			fmt.Fprintf(w, "  - %s  %s - %s  ep %d",
				e.Start.Format("02/01/2006"),
				e.Start.Format("15:04"),
				e.End.Format("15:04"),
				e.Episode)
			if e.Company != nil {
				fmt.Fprintf(w, "  {%s}", strings.Join(e.Company, ", "))
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w)
}
