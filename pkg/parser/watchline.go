package parser

import (
	"fmt"
	"regexp"
	"time"

	"github.com/vrusso/watchlog/pkg/track"
)

// clockLayout is the clock-time layout used inside session lines.
const clockLayout = "15:04"

// sessionPattern matches a session line: a start and end clock time, an
// episode token (digits, possibly dotted, or the "--" placeholder) and an
// optional brace-wrapped co-watcher group. The episode and company tokens
// are validated separately; the pattern only fixes the overall shape.
var sessionPattern = regexp.MustCompile(`^\s*([0-9]{2}:[0-9]{2})\s*-\s*([0-9]{2}:[0-9]{2})\s+([0-9][0-9.]*|--)\s*(\{.*\})?\s*$`)

// matchesSessionShape reports whether a line has the session-line shape,
// regardless of whether its tokens are valid.
func matchesSessionShape(line string) bool {
	return sessionPattern.MatchString(line)
}

// ParseSessionLine parses a session line against the context and returns the
// resulting watch entry. It requires a current date and a current show and
// fails with ErrNoCurrentDate or ErrNoCurrentShow otherwise, which enforces
// the ordering invariant that session lines follow a date and a title header.
//
// The entry's dates come from rollover inference:
//
//  1. When the previous entry's end clock time is after this session's start
//     clock time and this session does not itself cross midnight, the session
//     belongs to the day after the context date: the stream already crossed
//     midnight and this session continues on the new day.
//  2. When the session's end clock time is before its start, the session
//     itself crosses midnight: it starts on the context date and ends the
//     day after.
//  3. Otherwise the whole session falls on the context date.
//
// On success the entry is committed as the context's last entry and the
// context date advances when a rule moved it. Any failure leaves the context
// untouched.
func ParseSessionLine(ctx *Context, line string) (track.WatchEntry, error) {
	date, ok := ctx.CurrentDate()
	if !ok {
		return track.WatchEntry{}, fmt.Errorf("%w: %q", ErrNoCurrentDate, line)
	}
	show, ok := ctx.CurrentShow()
	if !ok {
		return track.WatchEntry{}, fmt.Errorf("%w: %q", ErrNoCurrentShow, line)
	}

	m := sessionPattern.FindStringSubmatch(line)
	if m == nil {
		return track.WatchEntry{}, fmt.Errorf("%w: %q", ErrLineFormat, line)
	}

	start, err := time.Parse(clockLayout, m[1])
	if err != nil {
		return track.WatchEntry{}, fmt.Errorf("%w: invalid start time %q in %q", ErrLineFormat, m[1], line)
	}
	end, err := time.Parse(clockLayout, m[2])
	if err != nil {
		return track.WatchEntry{}, fmt.Errorf("%w: invalid end time %q in %q", ErrLineFormat, m[2], line)
	}

	episode, err := track.ParseEpisode(m[3])
	if err != nil {
		return track.WatchEntry{}, fmt.Errorf("%w: %v in %q", ErrLineFormat, err, line)
	}

	var company *track.Company
	if m[4] != "" {
		c, err := track.ParseCompany(m[4])
		if err != nil {
			return track.WatchEntry{}, fmt.Errorf("%w: %v in %q", ErrLineFormat, err, line)
		}
		company = &c
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	startDate, endDate, newDate := date, date, date
	last := ctx.LastEntry()
	switch {
	case last != nil && minuteOfDay(last.End) > startMin && endMin >= startMin:
		// Rule 1: the previous session already carried the stream past
		// midnight; this one starts on the next day.
		startDate = date.AddDate(0, 0, 1)
		endDate = startDate
		newDate = startDate
	case endMin < startMin:
		// Rule 2: this session crosses midnight itself.
		endDate = date.AddDate(0, 0, 1)
		newDate = endDate
	}

	entry := track.WatchEntry{
		Show:    show,
		Start:   atClock(startDate, start),
		End:     atClock(endDate, end),
		Episode: episode,
		Company: company,
	}

	ctx.commit(entry, newDate)
	return entry, nil
}

// atClock combines a calendar date with a clock time.
func atClock(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

// minuteOfDay is a timestamp's clock time as minutes since midnight.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
