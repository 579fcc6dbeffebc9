package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// titlePattern matches a title header: a title starting with an alphanumeric
// character, free of brackets and braces, ending in a colon, with an optional
// trailing "//" comment. Colons inside the title are legal ("Re:Zero:"); the
// greedy capture stops at the last colon before the comment.
var titlePattern = regexp.MustCompile(`^\s*([a-zA-Z0-9][^\[\]{}]*):\s*(?://.*)?$`)

// ParseTitleLine parses a title header and returns the trimmed title without
// its trailing colon. It fails with ErrTitleFormat when the line does not
// have the title-header shape.
func ParseTitleLine(line string) (string, error) {
	m := titlePattern.FindStringSubmatch(line)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrTitleFormat, line)
	}
	return strings.TrimSpace(m[1]), nil
}
