// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// dates.go implements the date-parsing molecule. Source documents carry
// dates in several loose layouts; ParseDate tries each supported layout
// in a fixed priority order and never fails hard.
package docextract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthAbbreviations maps lowercase 3-letter month names to month numbers.
var monthAbbreviations = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	// dateStripRe removes characters that never appear in a supported
	// date layout before structured parsing is attempted.
	dateStripRe = regexp.MustCompile(`[^0-9A-Za-z/\-., ]`)

	// dateSplitRe separates the numeric components of slash/dash/dot layouts.
	dateSplitRe = regexp.MustCompile(`[/\-.]`)

	// textualDateRe matches "Mon DD, YYYY" style dates, e.g. "Mar 1, 2025".
	textualDateRe = regexp.MustCompile(`(?i)([a-z]{3})\s+(\d{1,2})[,\s]+(\d{4})`)

	// embeddedDateRe finds a numeric date anywhere in a longer string.
	embeddedDateRe = regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)
)

// fallbackLayouts are tried verbatim against the trimmed input when no
// structured layout matches. This stands in for a general-purpose date
// parser: common long-form and ISO layouts seen in real documents.
var fallbackLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"02 Jan 2006",
	time.RFC3339,
	time.RFC1123,
}

// ParseDate parses a loosely formatted date substring into a calendar
// date at UTC midnight. It never returns an error: unparseable input
// yields ok=false.
//
// Layouts are tried in a fixed priority order:
//  1. MM/DD/YYYY (also -, . separators; 2-digit years map to 2000+)
//  2. DD/MM/YYYY
//  3. YYYY/MM/DD
//  4. "Mon DD, YYYY" textual form
//  5. an embedded d/d/y date anywhere in the string, MM/DD preferred
//  6. a list of general-purpose fallback layouts
//
// The MM/DD-first ordering is a deliberate locale assumption: the source
// documents are predominantly US-formatted.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	cleaned := dateStripRe.ReplaceAllString(s, "")

	if parts := dateSplitRe.Split(cleaned, -1); len(parts) == 3 {
		// Numeric component orderings, tried US-first.
		if d, ok := dateFromParts(parts[2], parts[0], parts[1]); ok {
			return d, true
		}
		if d, ok := dateFromParts(parts[2], parts[1], parts[0]); ok {
			return d, true
		}
		if d, ok := dateFromParts(parts[0], parts[1], parts[2]); ok {
			return d, true
		}
	}

	if m := textualDateRe.FindStringSubmatch(cleaned); m != nil {
		if month, ok := monthAbbreviations[strings.ToLower(m[1])]; ok {
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if d, ok := makeDate(year, month, day); ok {
				return d, true
			}
		}
	}

	// The input may be a longer phrase with a date embedded in it.
	if m := embeddedDateRe.FindStringSubmatch(cleaned); m != nil {
		parts := dateSplitRe.Split(m[1], -1)
		if len(parts) == 3 {
			if d, ok := dateFromParts(parts[2], parts[0], parts[1]); ok {
				return d, true
			}
			if d, ok := dateFromParts(parts[2], parts[1], parts[0]); ok {
				return d, true
			}
		}
	}

	for _, layout := range fallbackLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// dateFromParts builds a date from string components, mapping 2-digit
// years into the 2000s.
func dateFromParts(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(dayStr))
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	return makeDate(year, time.Month(month), day)
}

// makeDate constructs a UTC calendar date and validates it. time.Date
// normalizes out-of-range components (month 13 becomes next January), so
// the components are checked against the constructed value to reject
// silently rolled-over dates.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if year < 1 || month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
