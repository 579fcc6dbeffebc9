package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vrusso/watchlog/pkg/store"
	"github.com/vrusso/watchlog/pkg/track"
)

// Diagnostic describes one line that could not be ingested.
type Diagnostic struct {
	// Source is the file the line came from.
	Source string

	// Num is the 1-based line number.
	Num int

	// Line is the raw line text.
	Line string

	// Err is the failure, one of the taxonomy in errors.go or a store error.
	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %v", d.Source, d.Num, d.Err)
}

// Result summarizes one parse run.
type Result struct {
	// Lines is the number of input lines seen, blanks included.
	Lines int

	// Entries holds every parsed watch entry in input order.
	Entries []track.WatchEntry

	// Diagnostics holds one element per failed line.
	Diagnostics []Diagnostic

	// Sources lists the files that were read.
	Sources []string

	// StartedAt and FinishedAt bracket the run.
	StartedAt  time.Time
	FinishedAt time.Time
}

// Clean reports whether every line was ingested.
func (r *Result) Clean() bool {
	return len(r.Diagnostics) == 0
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithStrict makes the session abort on the first failed line instead of
// recording a diagnostic and continuing.
func WithStrict(strict bool) SessionOption {
	return func(s *Session) {
		s.strict = strict
	}
}

// Session drives one parse run: it classifies each line, applies the context
// transition and hands successful records to the store. Title lines are
// resolved to show handles here, so the recognizers themselves stay decoupled
// from storage.
//
// A Session owns its Context exclusively and is not safe for concurrent use;
// parsing several files concurrently requires one Session each.
type Session struct {
	ctx    *Context
	store  store.Store
	strict bool

	lines   int
	entries []track.WatchEntry
	diags   []Diagnostic
}

// NewSession creates a Session feeding the given store.
func NewSession(st store.Store, opts ...SessionOption) *Session {
	s := &Session{
		ctx:   NewContext(),
		store: st,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Context exposes the session's parsing context, mainly for tests.
func (s *Session) Context() *Context {
	return s.ctx
}

// Feed ingests one line. On failure it records a diagnostic and returns the
// error; context state from before the line is preserved, except that a store
// failure after a session line has committed does not roll the context back.
func (s *Session) Feed(line Line) error {
	s.lines++

	fail := func(err error) error {
		s.diags = append(s.diags, Diagnostic{
			Source: line.Source,
			Num:    line.Num,
			Line:   line.Text,
			Err:    err,
		})
		return err
	}

	rec, err := Classify(s.ctx, line.Text)
	if err != nil {
		return fail(err)
	}

	switch rec.Kind {
	case KindTitle:
		id, err := s.store.CreateOrGetShow(rec.Title)
		if err != nil {
			return fail(err)
		}
		s.ctx.SelectShow(id)
	case KindSession:
		if err := s.store.AppendEntry(rec.Entry.Show, rec.Entry); err != nil {
			return fail(err)
		}
		s.entries = append(s.entries, rec.Entry)
	}
	return nil
}

// Run feeds every line from src. In strict mode the first failed line aborts
// the run with its position; otherwise failed lines become diagnostics in the
// result and parsing continues.
func (s *Session) Run(ctx context.Context, src LineSource) (*Result, error) {
	startedAt := time.Now()
	seen := make(map[string]bool)
	var sources []string

	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if !seen[line.Source] {
			seen[line.Source] = true
			sources = append(sources, line.Source)
		}

		if err := s.Feed(line); err != nil && s.strict {
			return nil, fmt.Errorf("%s:%d: %w", line.Source, line.Num, err)
		}
	}

	return &Result{
		Lines:       s.lines,
		Entries:     s.entries,
		Diagnostics: s.diags,
		Sources:     sources,
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
	}, nil
}
