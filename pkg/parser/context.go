package parser

import (
	"fmt"
	"time"

	"github.com/vrusso/watchlog/pkg/track"
)

// Context is the mutable state of one parse run. It threads the current date
// and current show across lines and remembers the previous watch entry so a
// session that continues past midnight can be placed on the right day.
//
// A Context belongs to exactly one parse run and must not be shared between
// concurrent runs. Failed line parses never mutate it: the session recognizer
// computes the full entry and any date delta first and commits in one step.
type Context struct {
	date    time.Time
	hasDate bool

	show    track.ShowID
	hasShow bool

	last *track.WatchEntry
}

// NewContext returns an empty context for a fresh parse run.
func NewContext() *Context {
	return &Context{}
}

// AdvanceToDate moves the context to a new date header. The date must be
// strictly after the current one when a current date exists; otherwise it
// fails with NonMonotonicDateError. On success the current show and the
// last entry are cleared, since a new date ends any prior session context.
func (c *Context) AdvanceToDate(date time.Time) error {
	if c.hasDate && !date.After(c.date) {
		return &NonMonotonicDateError{Current: c.date, Next: date}
	}

	c.date = date
	c.hasDate = true
	c.show = ""
	c.hasShow = false
	c.last = nil
	return nil
}

// SelectShow sets the current show and clears the last entry, starting fresh
// session-continuity tracking for the new show.
func (c *Context) SelectShow(id track.ShowID) {
	c.show = id
	c.hasShow = true
	c.last = nil
}

// CurrentDate returns the context's date, if one has been seen.
func (c *Context) CurrentDate() (time.Time, bool) {
	return c.date, c.hasDate
}

// CurrentShow returns the context's show handle, if one has been selected.
func (c *Context) CurrentShow() (track.ShowID, bool) {
	return c.show, c.hasShow
}

// LastEntry returns the previous watch entry used for rollover inference,
// or nil when none applies.
func (c *Context) LastEntry() *track.WatchEntry {
	return c.last
}

// commit records a successfully parsed entry and moves the context date to
// newDate in one step. Unlike AdvanceToDate this keeps the current show: a
// rollover advance happens mid-session, not at a new date header.
//
// The entry's show must match the current show; a mismatch is a caller bug,
// not a format error, and panics.
func (c *Context) commit(entry track.WatchEntry, newDate time.Time) {
	if !c.hasShow || entry.Show != c.show {
		panic(fmt.Sprintf("parser: entry show %q does not match context show %q", entry.Show, c.show))
	}

	c.date = newDate
	c.last = &entry
}
