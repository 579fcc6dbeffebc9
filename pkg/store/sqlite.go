package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vrusso/watchlog/pkg/track"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS shows (
    id    TEXT PRIMARY KEY,
    title TEXT NOT NULL UNIQUE,
    seq   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    show_id  TEXT NOT NULL REFERENCES shows(id),
    start_at TEXT NOT NULL,
    end_at   TEXT NOT NULL,
    episode  INTEGER NOT NULL,
    company  TEXT
);

CREATE INDEX IF NOT EXISTS entries_show_idx ON entries(show_id);
`

// timeLayout is the storage format for entry timestamps.
const timeLayout = time.RFC3339

// SQLite is a Store persisted to a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite-backed store at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateOrGetShow returns the handle for a title, creating it on first sight.
func (s *SQLite) CreateOrGetShow(title string) (track.ShowID, error) {
	var id string
	err := s.db.QueryRow("SELECT id FROM shows WHERE title = ?", title).Scan(&id)
	if err == nil {
		return track.ShowID(id), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("lookup show %q: %w", title, err)
	}

	id = uuid.NewString()
	_, err = s.db.Exec(
		"INSERT INTO shows (id, title, seq) VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM shows))",
		id, title)
	if err != nil {
		return "", fmt.Errorf("create show %q: %w", title, err)
	}
	return track.ShowID(id), nil
}

// AppendEntry records an entry under a show handle.
func (s *SQLite) AppendEntry(id track.ShowID, entry track.WatchEntry) error {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM shows WHERE id = ?", string(id)).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrUnknownShow, id)
	}
	if err != nil {
		return fmt.Errorf("lookup show %s: %w", id, err)
	}

	_, err = s.db.Exec(
		"INSERT INTO entries (show_id, start_at, end_at, episode, company) VALUES (?, ?, ?, ?, ?)",
		string(id),
		entry.Start.Format(timeLayout),
		entry.End.Format(timeLayout),
		int(entry.Episode),
		encodeCompany(entry.Company))
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// Shows lists all shows in first-seen order.
func (s *SQLite) Shows() ([]Show, error) {
	rows, err := s.db.Query("SELECT id, title FROM shows ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	var shows []Show
	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, Show{ID: track.ShowID(id), Title: title})
	}
	return shows, rows.Err()
}

// Entries lists a show's entries in append order.
func (s *SQLite) Entries(id track.ShowID) ([]track.WatchEntry, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM shows WHERE id = ?", string(id)).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShow, id)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup show %s: %w", id, err)
	}

	rows, err := s.db.Query(
		"SELECT start_at, end_at, episode, company FROM entries WHERE show_id = ? ORDER BY rowid", string(id))
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []track.WatchEntry
	for rows.Next() {
		var startAt, endAt string
		var episode int
		var company sql.NullString
		if err := rows.Scan(&startAt, &endAt, &episode, &company); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		start, err := time.Parse(timeLayout, startAt)
		if err != nil {
			return nil, fmt.Errorf("parse start time %q: %w", startAt, err)
		}
		end, err := time.Parse(timeLayout, endAt)
		if err != nil {
			return nil, fmt.Errorf("parse end time %q: %w", endAt, err)
		}

		entries = append(entries, track.WatchEntry{
			Show:    id,
			Start:   start,
			End:     end,
			Episode: track.Episode(episode),
			Company: decodeCompany(company),
		})
	}
	return entries, rows.Err()
}

// encodeCompany stores an absent group as NULL and a present group as a
// comma-joined list, keeping "{}" distinct from "no company".
func encodeCompany(c *track.Company) any {
	if c == nil {
		return nil
	}
	return strings.Join(c.Names, ",")
}

func decodeCompany(v sql.NullString) *track.Company {
	if !v.Valid {
		return nil
	}
	if v.String == "" {
		return &track.Company{}
	}
	return &track.Company{Names: strings.Split(v.String, ",")}
}
