package parse

import (
	"fmt"
	"strings"
	"time"
)

// MinuteLayout is the datetime-local layout the browser form submits.
const MinuteLayout = "2006-01-02T15:04"

// Zone-less layouts are interpreted in the caller's location.
var localLayouts = []string{
	MinuteLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// Timestamp parses a check-in or check-out timestamp and truncates it to the minute.
// RFC3339 input keeps its own offset; everything else is read in loc.
func Timestamp(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Truncate(time.Minute), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Truncate(time.Minute), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %q", raw)
}

// Minute formats t the way the browser form displays it.
func Minute(t time.Time) string {
	return t.Format(MinuteLayout)
}
