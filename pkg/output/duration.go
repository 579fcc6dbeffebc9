package output

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as hours and minutes ("3h24m", "47m").
// Watch logs have minute resolution, so seconds are dropped.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
