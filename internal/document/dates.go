package document

import (
	"regexp"
	"strings"
	"time"
)

// InvalidDate is rendered for dates that cannot be parsed.
const InvalidDate = "Invalid Date"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-07",
	time.DateOnly,
	"2006-01",
	"2006",
}

// FormatDate renders an ISO date as dd/mm/yyyy (pt-BR). Timestamps keep the
// offset they were written with; a bare year or year-month reads as the first
// day of that period.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return InvalidDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}

	return InvalidDate
}

var whitespace = regexp.MustCompile(`\s+`)

// artifactName joins prefix and parts with "-", replacing whitespace runs
// inside each part with "_".
func artifactName(prefix string, parts ...string) string {
	out := prefix
	for _, p := range parts {
		out += "-" + whitespace.ReplaceAllString(p, "_")
	}
	return out
}
