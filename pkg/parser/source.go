package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Line is one raw input line with its origin.
type Line struct {
	// Text is the raw line content.
	Text string

	// Source is the file path this line came from.
	Source string

	// Num is the 1-based line number in the source file.
	Num int
}

// LineSource provides an iterator over raw log lines.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next line. Returns io.EOF when no more lines are
	// available.
	Next(ctx context.Context) (Line, error)

	// Close releases any resources held by the source.
	Close() error
}

// FileSource implements LineSource for reading from log files in order.
type FileSource struct {
	files []string

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// NewFileSource creates a LineSource that reads the given files back to back.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		fileIndex: -1,
	}
}

// Next returns the next raw line.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (Line, error) {
	for {
		select {
		case <-ctx.Done():
			return Line{}, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return Line{}, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			return Line{
				Text:   s.currentScanner.Text(),
				Source: s.currentSource,
				Num:    s.currentLine,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return Line{}, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return Line{}, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile == nil {
		return nil
	}
	err := s.currentFile.Close()
	s.currentFile = nil
	s.currentScanner = nil
	return err
}

// ExpandGlobs expands file paths and glob patterns into a deduplicated,
// sorted list of paths. Patterns that match nothing are kept as literal
// paths so the caller gets a useful file-not-found error later.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(result)
	return result, nil
}
