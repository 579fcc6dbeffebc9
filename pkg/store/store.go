// Package store accumulates parsed watch entries per show.
//
// The parsing core only depends on the Store interface: it asks for a show
// handle by title and appends entries under that handle. Handles are opaque
// to the parser.
package store

import (
	"errors"

	"github.com/vrusso/watchlog/pkg/track"
)

// ErrUnknownShow indicates an append under a handle the store never issued.
var ErrUnknownShow = errors.New("unknown show id")

// Show pairs a show handle with its title.
type Show struct {
	ID    track.ShowID
	Title string
}

// Store is the collaborator interface consumed by the parsing core, plus the
// read-back operations reporting needs.
type Store interface {
	// CreateOrGetShow returns the handle for a title, creating the show on
	// first sight. It is idempotent per distinct title.
	CreateOrGetShow(title string) (track.ShowID, error)

	// AppendEntry records an entry under a show handle.
	// Fails with ErrUnknownShow when the handle is unknown.
	AppendEntry(id track.ShowID, entry track.WatchEntry) error

	// Shows lists all shows in first-seen order.
	Shows() ([]Show, error)

	// Entries lists a show's entries in append order.
	// Fails with ErrUnknownShow when the handle is unknown.
	Entries(id track.ShowID) ([]track.WatchEntry, error)
}
