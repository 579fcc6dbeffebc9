package track

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCompany indicates a co-watcher group that is not wrapped in braces.
var ErrInvalidCompany = errors.New("invalid company format")

// Company is the group of people a session was watched with. Names keep
// their left-to-right order from the source text and are not deduplicated.
type Company struct {
	Names []string
}

// ParseCompany parses a co-watcher group of the form "{name, name, ...}".
// The text must be fully wrapped in a single brace pair. Entries are
// comma-separated and trimmed; empty entries are dropped, so a trailing
// comma is tolerated and "{}" yields an empty group.
func ParseCompany(text string) (Company, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 || trimmed[0] != '{' || trimmed[len(trimmed)-1] != '}' {
		return Company{}, fmt.Errorf("%w: %q", ErrInvalidCompany, text)
	}

	interior := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if interior == "" {
		return Company{}, nil
	}

	var names []string
	for _, piece := range strings.Split(interior, ",") {
		name := strings.TrimSpace(piece)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return Company{Names: names}, nil
}

// Empty reports whether the group has no names.
func (c Company) Empty() bool {
	return len(c.Names) == 0
}

// String renders the group back in its source form.
func (c Company) String() string {
	return "{" + strings.Join(c.Names, ", ") + "}"
}
