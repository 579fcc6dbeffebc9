package parser

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vrusso/watchlog/pkg/track"
)

// sessionContext returns a context positioned on 10/02/2022 with a show selected.
func sessionContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext()
	if err := ctx.AdvanceToDate(date(2022, 2, 10)); err != nil {
		t.Fatalf("AdvanceToDate() error = %v", err)
	}
	ctx.SelectShow("show-1")
	return ctx
}

func at(d time.Time, hour, min int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, d.Location())
}

func TestParseSessionLine(t *testing.T) {
	d := date(2022, 2, 10)

	tests := []struct {
		name        string
		line        string
		wantStart   time.Time
		wantEnd     time.Time
		wantEpisode track.Episode
		wantCompany []string
		hasCompany  bool
	}{
		{
			name:        "with two co-watchers",
			line:        "10:00 - 12:00 12 {Gary, Amim}",
			wantStart:   at(d, 10, 0),
			wantEnd:     at(d, 12, 0),
			wantEpisode: 12,
			wantCompany: []string{"Gary", "Amim"},
			hasCompany:  true,
		},
		{
			name:        "with one co-watcher",
			line:        "10:00 - 12:00 12 {Gary}",
			wantStart:   at(d, 10, 0),
			wantEnd:     at(d, 12, 0),
			wantEpisode: 12,
			wantCompany: []string{"Gary"},
			hasCompany:  true,
		},
		{
			name:        "without company",
			line:        "10:00 - 12:00 12",
			wantStart:   at(d, 10, 0),
			wantEnd:     at(d, 12, 0),
			wantEpisode: 12,
		},
		{
			name:        "empty company group",
			line:        "10:00 - 12:00 12 {}",
			wantStart:   at(d, 10, 0),
			wantEnd:     at(d, 12, 0),
			wantEpisode: 12,
			hasCompany:  true,
		},
		{
			name:        "leading zero episode",
			line:        "16:40 - 18:24 01 {Vinicius Russo}",
			wantStart:   at(d, 16, 40),
			wantEnd:     at(d, 18, 24),
			wantEpisode: 1,
			wantCompany: []string{"Vinicius Russo"},
			hasCompany:  true,
		},
		{
			name:        "single digit episode",
			line:        "20:09 - 20:46 7",
			wantStart:   at(d, 20, 9),
			wantEnd:     at(d, 20, 46),
			wantEpisode: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := sessionContext(t)
			got, err := ParseSessionLine(ctx, tt.line)
			if err != nil {
				t.Fatalf("ParseSessionLine(%q) error = %v", tt.line, err)
			}

			if got.Show != "show-1" {
				t.Errorf("Show = %q, want %q", got.Show, "show-1")
			}
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", got.End, tt.wantEnd)
			}
			if got.Episode != tt.wantEpisode {
				t.Errorf("Episode = %d, want %d", got.Episode, tt.wantEpisode)
			}
			if tt.hasCompany {
				if got.Company == nil {
					t.Fatal("Company = nil, want a group")
				}
				if !reflect.DeepEqual(got.Company.Names, tt.wantCompany) {
					t.Errorf("Company = %v, want %v", got.Company.Names, tt.wantCompany)
				}
			} else if got.Company != nil {
				t.Errorf("Company = %v, want nil", got.Company.Names)
			}

			if last := ctx.LastEntry(); last == nil || !last.Start.Equal(got.Start) {
				t.Error("context last entry not updated after successful parse")
			}
		})
	}
}

func TestParseSessionLine_MissingContext(t *testing.T) {
	ctx := NewContext()
	_, err := ParseSessionLine(ctx, "10:00 - 12:00 12")
	if !errors.Is(err, ErrNoCurrentDate) {
		t.Errorf("error = %v, want ErrNoCurrentDate", err)
	}

	if err := ctx.AdvanceToDate(date(2022, 2, 10)); err != nil {
		t.Fatalf("AdvanceToDate() error = %v", err)
	}
	_, err = ParseSessionLine(ctx, "10:00 - 12:00 12")
	if !errors.Is(err, ErrNoCurrentShow) {
		t.Errorf("error = %v, want ErrNoCurrentShow", err)
	}
}

func TestParseSessionLine_BadTokens(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "no separator", line: "10:00 12:00 12"},
		{name: "missing end time", line: "10:00 - 12"},
		{name: "impossible hour", line: "25:00 - 26:00 12"},
		{name: "impossible minute", line: "10:60 - 11:00 12"},
		{name: "fractional episode", line: "10:00 - 12:00 1.5"},
		{name: "placeholder episode", line: "10:00 - 12:00 --"},
		{name: "letters for episode", line: "10:00 - 12:00 ab"},
		{name: "missing episode", line: "10:00 - 12:00"},
		{name: "garbage", line: "not a session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := sessionContext(t)
			_, err := ParseSessionLine(ctx, tt.line)
			if !errors.Is(err, ErrLineFormat) {
				t.Fatalf("ParseSessionLine(%q) error = %v, want ErrLineFormat", tt.line, err)
			}

			// Failed parses must leave the context untouched.
			if ctx.LastEntry() != nil {
				t.Error("context last entry mutated by failed parse")
			}
			if d, _ := ctx.CurrentDate(); !d.Equal(date(2022, 2, 10)) {
				t.Errorf("context date mutated by failed parse: %v", d)
			}
		})
	}
}

// Scenario: the previous session crossed midnight implicitly, the next one
// continues on the new day.
func TestRollover_LastSessionCrossed(t *testing.T) {
	d := date(2022, 2, 10)
	ctx := sessionContext(t)

	first, err := ParseSessionLine(ctx, "23:00 - 23:40 12")
	if err != nil {
		t.Fatalf("first session error = %v", err)
	}
	second, err := ParseSessionLine(ctx, "00:00 - 00:10 13")
	if err != nil {
		t.Fatalf("second session error = %v", err)
	}

	if !first.Start.Equal(at(d, 23, 0)) || !first.End.Equal(at(d, 23, 40)) {
		t.Errorf("first session = %v - %v, want both on %v", first.Start, first.End, d)
	}

	next := d.AddDate(0, 0, 1)
	if !second.Start.Equal(at(next, 0, 0)) || !second.End.Equal(at(next, 0, 10)) {
		t.Errorf("second session = %v - %v, want both on %v", second.Start, second.End, next)
	}
	if cur, _ := ctx.CurrentDate(); !cur.Equal(next) {
		t.Errorf("context date = %v, want %v", cur, next)
	}
}

// Scenario: a session crosses midnight itself.
func TestRollover_SessionCrosses(t *testing.T) {
	d := date(2022, 2, 10)
	next := d.AddDate(0, 0, 1)
	ctx := sessionContext(t)

	first, err := ParseSessionLine(ctx, "23:40 - 00:20 12")
	if err != nil {
		t.Fatalf("first session error = %v", err)
	}
	if !first.Start.Equal(at(d, 23, 40)) {
		t.Errorf("start = %v, want %v", first.Start, at(d, 23, 40))
	}
	if !first.End.Equal(at(next, 0, 20)) {
		t.Errorf("end = %v, want %v", first.End, at(next, 0, 20))
	}
	if cur, _ := ctx.CurrentDate(); !cur.Equal(next) {
		t.Errorf("context date = %v, want %v", cur, next)
	}

	second, err := ParseSessionLine(ctx, "00:20 - 00:30 13")
	if err != nil {
		t.Fatalf("second session error = %v", err)
	}
	if !second.Start.Equal(at(next, 0, 20)) || !second.End.Equal(at(next, 0, 30)) {
		t.Errorf("second session = %v - %v, want both on %v", second.Start, second.End, next)
	}
	if cur, _ := ctx.CurrentDate(); !cur.Equal(next) {
		t.Errorf("context date = %v, want %v (no extra advance)", cur, next)
	}
}

// Scenario: two consecutive midnight-crossing sessions advance the date twice.
func TestRollover_Combined(t *testing.T) {
	d := date(2022, 2, 10)
	d1 := d.AddDate(0, 0, 1)
	d2 := d.AddDate(0, 0, 2)
	ctx := sessionContext(t)

	first, err := ParseSessionLine(ctx, "23:00 - 23:40 12")
	if err != nil {
		t.Fatalf("first session error = %v", err)
	}
	if !first.Start.Equal(at(d, 23, 0)) || !first.End.Equal(at(d, 23, 40)) {
		t.Errorf("first session = %v - %v, want both on %v", first.Start, first.End, d)
	}
	if cur, _ := ctx.CurrentDate(); !cur.Equal(d) {
		t.Errorf("context date = %v, want %v", cur, d)
	}

	second, err := ParseSessionLine(ctx, "23:00 - 02:10 12")
	if err != nil {
		t.Fatalf("second session error = %v", err)
	}
	if !second.Start.Equal(at(d, 23, 0)) {
		t.Errorf("second start = %v, want %v", second.Start, at(d, 23, 0))
	}
	if !second.End.Equal(at(d1, 2, 10)) {
		t.Errorf("second end = %v, want %v", second.End, at(d1, 2, 10))
	}
	if cur, _ := ctx.CurrentDate(); !cur.Equal(d1) {
		t.Errorf("context date = %v, want %v", cur, d1)
	}

	third, err := ParseSessionLine(ctx, "02:10 - 00:00 13")
	if err != nil {
		t.Fatalf("third session error = %v", err)
	}
	if !third.Start.Equal(at(d1, 2, 10)) {
		t.Errorf("third start = %v, want %v", third.Start, at(d1, 2, 10))
	}
	if !third.End.Equal(at(d2, 0, 0)) {
		t.Errorf("third end = %v, want %v", third.End, at(d2, 0, 0))
	}
	if cur, _ := ctx.CurrentDate(); !cur.Equal(d2) {
		t.Errorf("context date = %v, want %v", cur, d2)
	}
}

func TestParseSessionLine_EndNeverBeforeStart(t *testing.T) {
	lines := []string{
		"10:00 - 12:00 01",
		"23:40 - 00:20 02",
		"00:20 - 00:30 03",
		"23:00 - 02:10 04",
	}

	ctx := sessionContext(t)
	for _, line := range lines {
		entry, err := ParseSessionLine(ctx, line)
		if err != nil {
			t.Fatalf("ParseSessionLine(%q) error = %v", line, err)
		}
		if entry.End.Before(entry.Start) {
			t.Errorf("ParseSessionLine(%q): end %v before start %v", line, entry.End, entry.Start)
		}
	}
}
