package dateutil

import (
	"strings"
	"time"
)

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a serialized timestamp. Values without zone
// information are interpreted in loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateOnlyUTC parses raw, drops the time of day as seen in loc and returns
// UTC midnight of that calendar date. Empty or malformed input yields nil.
func DateOnlyUTC(raw string, loc *time.Location) *time.Time {
	t, ok := ParseTimestamp(raw, loc)
	if !ok {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &date
}

// IsSameDate reports whether a and b fall on the same calendar date in loc.
func IsSameDate(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// LocalDateUTC returns UTC midnight of t's calendar date in loc, the same
// encoding DateOnlyUTC uses for date-only bounds.
func LocalDateUTC(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsDateOn reports whether the date-only value date (UTC midnight) names the
// calendar date of day in loc.
func IsDateOn(date, day time.Time, loc *time.Location) bool {
	return date.UTC().Equal(LocalDateUTC(day, loc))
}

// StartOfUTCDay truncates t to midnight of its UTC calendar date.
func StartOfUTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CompareNilFirstDesc orders optional instants most recent first, with nil
// ahead of any instant. Two nils compare equal.
func CompareNilFirstDesc(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return b.Compare(*a)
}
