package parser

import (
	"strings"
	"time"

	"github.com/vrusso/watchlog/pkg/track"
)

// commentMarker introduces a comment; a line holding only a comment is skipped.
const commentMarker = "//"

// Kind identifies which recognizer matched a line.
type Kind int

const (
	// KindSkip is a blank or comment-only line.
	KindSkip Kind = iota
	// KindDate is a date header.
	KindDate
	// KindTitle is a title header.
	KindTitle
	// KindSession is a watch-session line.
	KindSession
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindSkip:
		return "skip"
	case KindDate:
		return "date"
	case KindTitle:
		return "title"
	case KindSession:
		return "session"
	default:
		return "unknown"
	}
}

// Record is the parsed form of one input line. Exactly one of Date, Title or
// Entry is meaningful, selected by Kind.
type Record struct {
	Kind  Kind
	Date  time.Time
	Title string
	Entry track.WatchEntry
}

// Classify parses one raw line against the context. Blank and comment-only
// lines are skipped; otherwise the date, title and session recognizers are
// tried in that fixed order and the first match wins. A line matching none
// of them fails with UnrecognizedLineError.
//
// A date match advances the context. A title match only surfaces the title:
// the caller resolves it to a show handle against its store and then calls
// SelectShow, which keeps this package decoupled from storage. A session
// match has already been committed to the context.
//
// On failure the context keeps the state it had before the line.
func Classify(ctx *Context, line string) (Record, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
		return Record{Kind: KindSkip}, nil
	}

	if date, err := ParseDateLine(line); err == nil {
		if err := ctx.AdvanceToDate(date); err != nil {
			return Record{}, err
		}
		return Record{Kind: KindDate, Date: date}, nil
	}

	if title, err := ParseTitleLine(line); err == nil {
		return Record{Kind: KindTitle, Title: title}, nil
	}

	if matchesSessionShape(line) {
		entry, err := ParseSessionLine(ctx, line)
		if err != nil {
			return Record{}, err
		}
		return Record{Kind: KindSession, Entry: entry}, nil
	}

	return Record{}, &UnrecognizedLineError{Line: line}
}
