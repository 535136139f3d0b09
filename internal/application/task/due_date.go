package task

import (
	"regexp"
	"strings"
	"time"
)

var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)

// Layouts accepted for a due date, tried in order after ordinal suffixes
// ("3rd") are stripped.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"01/02/2006",
}

// ParseDueDate parses the forms clients send for a due date. Dates without a
// zone are taken as UTC.
func ParseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
