// internal/ingest/dates.go
package ingest

import (
	"strings"
	"time"
)

// Day-first layouts are tried before ISO ones: reservation exports and
// form responses are Spanish-locale, so 03/04/2026 is the 3rd of April.
// Non-padded day/month stands accept zero-padded digits too, so a single
// layout covers "3/4/2026", "03/04/2026" and mixed-padding variants.
var dateLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a timestamp with day-first ambiguity resolution. The
// zero time is the null sentinel for unparseable input; callers exclude
// such rows from date math instead of failing the run.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
