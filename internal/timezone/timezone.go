package timezone

import (
	"fmt"
	"strings"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// LocalLayouts are the salon-local datetime forms accepted on both sides
// of the API.
var LocalLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// MatchLayout returns the layout s is written in, or "" when none fits.
// Surrounding spaces are ignored.
func MatchLayout(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range LocalLayouts {
		if len(s) != len(layout) {
			continue
		}
		if _, err := time.Parse(layout, s); err == nil {
			return layout
		}
	}
	return ""
}

// ParseLocal reads a salon-local datetime in the salon timezone.
func ParseLocal(tz, s string) (time.Time, error) {
	layout := MatchLayout(s)
	if layout == "" {
		return time.Time{}, fmt.Errorf("invalid local datetime %q", s)
	}
	return time.ParseInLocation(layout, strings.TrimSpace(s), Location(tz))
}

// FormatLocal renders t as salon-local datetime text.
func FormatLocal(tz string, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location(tz)).Format("2006-01-02T15:04")
}

// ParseDate reads a salon-local calendar date.
func ParseDate(tz, s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Location(tz))
}
