// Package output provides formatting and output generation for parse results.
package output

import (
	"fmt"
	"time"

	"github.com/vrusso/watchlog/pkg/parser"
	"github.com/vrusso/watchlog/pkg/store"
	"github.com/vrusso/watchlog/pkg/track"
)

// Report is the complete output of one parse run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Shows contains per-show findings in first-seen order.
	Shows []ShowReport

	// Diagnostics lists the lines that could not be ingested.
	Diagnostics []LineDiagnostic

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// LinesProcessed is the number of input lines seen, blanks included.
	LinesProcessed int

	// EntriesParsed is the number of watch entries ingested.
	EntriesParsed int

	// ShowsSeen is the number of distinct shows.
	ShowsSeen int

	// BadLines is the number of lines that failed to parse.
	BadLines int
}

// ShowReport aggregates one show's entries.
type ShowReport struct {
	Title    string
	Sessions int

	// WatchTime is the summed session duration.
	WatchTime time.Duration

	// CoWatchers lists distinct co-watcher names in first-seen order.
	CoWatchers []string

	// Entries holds the show's entries in append order.
	Entries []EntryReport
}

// EntryReport is one watch entry, flattened for output.
type EntryReport struct {
	Start   time.Time
	End     time.Time
	Episode int

	// Company is nil when the line named no co-watchers.
	Company []string
}

// LineDiagnostic is one failed line.
type LineDiagnostic struct {
	Source  string
	Line    int
	Text    string
	Message string
}

// Metadata provides context about the parse run.
type Metadata struct {
	// Sources lists the log files that were read.
	Sources []string

	// ParsedAt is when the run finished.
	ParsedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration
}

// NewReport builds a Report from a parse result and the store it filled.
func NewReport(result *parser.Result, st store.Store) (*Report, error) {
	shows, err := st.Shows()
	if err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}

	report := &Report{
		Summary: Summary{
			LinesProcessed: result.Lines,
			EntriesParsed:  len(result.Entries),
			ShowsSeen:      len(shows),
			BadLines:       len(result.Diagnostics),
		},
		Metadata: Metadata{
			Sources:  result.Sources,
			ParsedAt: result.FinishedAt,
			Duration: result.FinishedAt.Sub(result.StartedAt),
		},
	}

	for _, show := range shows {
		entries, err := st.Entries(show.ID)
		if err != nil {
			return nil, fmt.Errorf("listing entries for %q: %w", show.Title, err)
		}
		report.Shows = append(report.Shows, newShowReport(show.Title, entries))
	}

	for _, d := range result.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, LineDiagnostic{
			Source:  d.Source,
			Line:    d.Num,
			Text:    d.Line,
			Message: d.Err.Error(),
		})
	}

	return report, nil
}

func newShowReport(title string, entries []track.WatchEntry) ShowReport {
	sr := ShowReport{
		Title:    title,
		Sessions: len(entries),
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		sr.WatchTime += e.Duration()

		er := EntryReport{
			Start:   e.Start,
			End:     e.End,
			Episode: int(e.Episode),
		}
		if e.Company != nil {
			er.Company = append([]string{}, e.Company.Names...)
			for _, name := range e.Company.Names {
				if !seen[name] {
					seen[name] = true
					sr.CoWatchers = append(sr.CoWatchers, name)
				}
			}
		}
		sr.Entries = append(sr.Entries, er)
	}

	return sr
}

// HasIssues returns true if any line failed to parse.
func (r *Report) HasIssues() bool {
	return r.Summary.BadLines > 0
}
