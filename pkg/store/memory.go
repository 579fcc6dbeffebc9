package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vrusso/watchlog/pkg/track"
)

// Memory is an in-memory Store. It backs one-shot parse and validate runs
// and tests; nothing survives the process.
type Memory struct {
	order   []track.ShowID
	byID    map[track.ShowID]*memoryShow
	byTitle map[string]track.ShowID
}

type memoryShow struct {
	title   string
	entries []track.WatchEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[track.ShowID]*memoryShow),
		byTitle: make(map[string]track.ShowID),
	}
}

// CreateOrGetShow returns the handle for a title, creating it on first sight.
func (m *Memory) CreateOrGetShow(title string) (track.ShowID, error) {
	if id, ok := m.byTitle[title]; ok {
		return id, nil
	}

	id := track.ShowID(uuid.NewString())
	m.byID[id] = &memoryShow{title: title}
	m.byTitle[title] = id
	m.order = append(m.order, id)
	return id, nil
}

// AppendEntry records an entry under a show handle.
func (m *Memory) AppendEntry(id track.ShowID, entry track.WatchEntry) error {
	show, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownShow, id)
	}
	show.entries = append(show.entries, entry)
	return nil
}

// Shows lists all shows in first-seen order.
func (m *Memory) Shows() ([]Show, error) {
	shows := make([]Show, 0, len(m.order))
	for _, id := range m.order {
		shows = append(shows, Show{ID: id, Title: m.byID[id].title})
	}
	return shows, nil
}

// Entries lists a show's entries in append order.
func (m *Memory) Entries(id track.ShowID) ([]track.WatchEntry, error) {
	show, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShow, id)
	}
	entries := make([]track.WatchEntry, len(show.entries))
	copy(entries, show.entries)
	return entries, nil
}
