// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// patterns.go defines the data-driven rule-table machinery shared by the
// invoice and contract extractors. Each field is described by an
// immutable, ordered list of patterns iterated until the first match: a
// declarative table rather than procedural branching, so the rule sets
// are independently testable. All patterns are RE2, which guarantees
// linear-time matching against adversarial input.
package docextract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// fieldPattern is a single entry in an ordered pattern table. Group
// selects the capture group holding the field value.
type fieldPattern struct {
	re    *regexp.Regexp
	group int
}

// pat builds a fieldPattern capturing group 1. Table entries are built
// at package init; an invalid pattern is a programming error and panics
// via regexp.MustCompile.
func pat(expr string) fieldPattern {
	return fieldPattern{re: regexp.MustCompile(expr), group: 1}
}

// firstMatch returns the trimmed value of the first table entry that
// matches text. The scan stops at the first matching pattern: later
// entries never override an earlier hit.
func firstMatch(text string, table []fieldPattern) (string, bool) {
	for _, p := range table {
		m := p.re.FindStringSubmatch(text)
		if m == nil || p.group >= len(m) || m[p.group] == "" {
			continue
		}
		return strings.TrimSpace(m[p.group]), true
	}
	return "", false
}

// firstAmount runs a pattern table and converts the first matching span
// to a monetary value.
func firstAmount(text string, table []fieldPattern) (float64, bool) {
	span, ok := firstMatch(text, table)
	if !ok {
		return 0, false
	}
	v, err := parseAmount(span)
	return v, err == nil
}

// firstDate runs a pattern table and feeds the first matching span
// through ParseDate. A span that matches but does not parse yields
// ok=false: the field stays unset rather than falling through to a
// weaker pattern.
func firstDate(text string, table []fieldPattern) (time.Time, bool) {
	span, ok := firstMatch(text, table)
	if !ok {
		return time.Time{}, false
	}
	return ParseDate(span)
}

// firstInt runs a pattern table and converts the first matching span to
// an integer.
func firstInt(text string, table []fieldPattern) (int, bool) {
	span, ok := firstMatch(text, table)
	if !ok {
		return 0, false
	}
	return parseCount(span)
}

// leadingDigitsRe reads the integer prefix of a span.
var leadingDigitsRe = regexp.MustCompile(`^\d+`)

// parseCount converts a matched span to a positive count, tolerating
// trailing junk after the digits. Zero is not a count.
func parseCount(s string) (int, bool) {
	digits := leadingDigitsRe.FindString(strings.TrimSpace(s))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
