// Package track defines the domain values produced by parsing a watch log:
// episode numbers, co-watcher groups and watch entries.
package track

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidEpisode indicates an episode token that is not a plain signed integer.
var ErrInvalidEpisode = errors.New("invalid episode number")

// Episode is an episode number. Negative values are legal and used for
// specials and pre-air numbering.
type Episode int

// ParseEpisode parses an episode token: an optional leading minus sign
// followed by one or more ASCII digits, nothing else. Leading zeros are
// normalized away ("007" parses to 7).
//
// Fractional episodes ("1.5") and the "--" placeholder are rejected here even
// though the session-line pattern admits them; supporting them is a known
// limitation, not a silent truncation.
func ParseEpisode(text string) (Episode, error) {
	digits := text
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEpisode, text)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidEpisode, text)
		}
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEpisode, text)
	}
	return Episode(n), nil
}
