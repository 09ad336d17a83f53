package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
)

// DefaultDuration is the offset used to pre-fill an appointment's end time.
const DefaultDuration = 60 * time.Minute

// ParseLocal parses a local, timezone-less datetime and returns the layout
// it matched. Derived values keep that layout so they round-trip into the
// same control.
func ParseLocal(s string) (time.Time, string, bool) {
	layout := timezone.MatchLayout(s)
	if layout == "" {
		return time.Time{}, "", false
	}
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, "", false
	}
	return t, layout, true
}

// DeriveEnd returns start + DefaultDuration in start's own format, or ""
// when start cannot be parsed. An empty result means the end time must be
// left for the user to fill in.
func DeriveEnd(start string) string {
	t, layout, ok := ParseLocal(start)
	if !ok {
		return ""
	}
	return t.Add(DefaultDuration).Format(layout)
}
