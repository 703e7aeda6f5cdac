package timeutil

import (
	"strings"
	"time"
)

// timestampLayouts lists accepted timestamp formats in the order they are tried.
// Values without a zone are read as UTC wall time.
var timestampLayouts = []string{
	"2006:01:02 15:04:05",                 // EXIF standard
	"2006-01-02T15:04:05",                 // ISO 8601
	"2006-01-02 15:04:05",                 // Common DB format
	"2006-01-02T15:04:05.999999999",       // ISO with fractional seconds
	"2006-01-02 15:04:05.999999999",       // DB with fractional seconds
	"2006:01:02 15:04:05-0700",            // EXIF with timezone
	"2006-01-02T15:04:05-0700",            // ISO with timezone
	"2006-01-02T15:04:05.999999999-0700",  // ISO with fraction and timezone
	time.RFC3339Nano,                      // ISO with Z or colon offset
	"2006-01-02 15:04:05.999999999Z07:00", // DB with colon offset
}

// ParseTimestamp parses a capture timestamp using the first layout that matches.
// It reports false when the text is empty or no layout matches; an unparseable
// timestamp is treated the same as a missing one.
func ParseTimestamp(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// FormatISO renders a parsed timestamp the way reports expose first/last seen values
func FormatISO(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format("2006-01-02T15:04:05.999999")
	}
	return t.Format("2006-01-02T15:04:05.999999-07:00")
}
