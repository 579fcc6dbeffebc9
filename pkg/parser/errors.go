package parser

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the recognizers. Each failure wraps one of these and
// carries the offending line text, so callers can both classify the failure
// with errors.Is and show the raw input.
var (
	// ErrDateFormat indicates a line that is not a valid date header.
	ErrDateFormat = errors.New("malformed date line")

	// ErrTitleFormat indicates a line that is not a valid title header.
	ErrTitleFormat = errors.New("malformed title line")

	// ErrLineFormat indicates a line that does not match the session shape,
	// or a session line with an invalid time, episode or company token.
	ErrLineFormat = errors.New("malformed session line")

	// ErrNoCurrentDate indicates a session line before any date header.
	ErrNoCurrentDate = errors.New("no current date in context")

	// ErrNoCurrentShow indicates a session line before any title header.
	ErrNoCurrentShow = errors.New("no current show in context")
)

// NonMonotonicDateError reports a date header that is not strictly after the
// context's current date.
type NonMonotonicDateError struct {
	Current time.Time
	Next    time.Time
}

func (e *NonMonotonicDateError) Error() string {
	return fmt.Sprintf("date %s is not after current date %s",
		e.Next.Format(dateLayout), e.Current.Format(dateLayout))
}

// UnrecognizedLineError reports a non-blank line that matched no recognizer.
type UnrecognizedLineError struct {
	Line string
}

func (e *UnrecognizedLineError) Error() string {
	return fmt.Sprintf("unrecognized line: %q", e.Line)
}
