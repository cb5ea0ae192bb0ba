package clean

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeDate = regexp.MustCompile(`(\d+)\s+(day|days|month|months|year|years)\s+ago`)

// NormalizeDate parses a posting date in any of the supported forms and
// returns a calendar date (midnight UTC), or nil when the string cannot be
// understood. It never errors: unparseable input degrades to an absent date.
//
// Relative forms ("3 days ago") are resolved against now. Months and years
// use flat 30- and 365-day factors, matching how job boards round these.
func (v *Vocabulary) NormalizeDate(raw string, now time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "N/A" {
		return nil
	}

	if m := relativeDate.FindStringSubmatch(strings.ToLower(raw)); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		var d time.Time
		switch m[2] {
		case "day", "days":
			d = today.AddDate(0, 0, -n)
		case "month", "months":
			d = today.AddDate(0, 0, -n*30)
		case "year", "years":
			d = today.AddDate(0, 0, -n*365)
		}
		return &d
	}

	for _, layout := range v.dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
