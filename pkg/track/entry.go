package track

import "time"

// ShowID is an opaque handle for a tracked show, issued by the store.
// The parser never generates or inspects handles.
type ShowID string

// WatchEntry is one contiguous watching interval of one episode.
// Start and End carry full date and time; the date portion is inferred by the
// parsing context, since session lines only name clock times. After rollover
// resolution End never precedes Start. Entries are immutable once built.
type WatchEntry struct {
	Show    ShowID
	Start   time.Time
	End     time.Time
	Episode Episode

	// Company is nil when the line names no co-watchers. A present but
	// empty group ("{}") is distinct from an absent one.
	Company *Company
}

// Duration is the length of the watching interval.
func (e WatchEntry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
