// Package parser turns the lines of a watch log into structured records.
//
// A log is a sequence of date headers (DD/MM/YYYY), title headers
// ("Some Show:") and session lines ("21:00 - 21:24 03 {Gary}"). Each line
// kind has its own recognizer; the session recognizer additionally consults
// a Context that threads the current date and show across lines and resolves
// sessions that cross midnight.
package parser

import (
	"fmt"
	"regexp"
	"time"
)

// dateLayout is the calendar-date layout used by date headers.
const dateLayout = "02/01/2006"

// datePattern matches a date header: DD/MM/YYYY with optional surrounding
// whitespace and an optional trailing "//" comment.
var datePattern = regexp.MustCompile(`^\s*(\d{2}/\d{2}/\d{4})\s*(?://.*)?$`)

// ParseDateLine parses a date header and returns the calendar date at
// midnight UTC. It fails with ErrDateFormat when the line does not have the
// date-header shape or names an impossible date; callers use that failure to
// try the next recognizer.
func ParseDateLine(line string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, line)
	}

	d, err := time.ParseInLocation(dateLayout, m[1], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrDateFormat, line, err)
	}
	return d, nil
}
