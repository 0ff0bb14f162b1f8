// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// amounts.go implements the monetary-amount molecule. It is a pure
// function over a text span with a fixed candidate priority.
package docextract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// dollarAmountRe matches "$1,963.00" style amounts.
	dollarAmountRe = regexp.MustCompile(`\$\s*([0-9,]+(\.[0-9]{2})?)`)

	// usdAmountRe matches "1963.00 USD" style amounts.
	usdAmountRe = regexp.MustCompile(`(?i)([0-9,]+(\.[0-9]{2})?)\s*USD`)

	// bareAmountRe matches any number that could plausibly be an amount.
	bareAmountRe = regexp.MustCompile(`([0-9,]+(\.[0-9]{2})?)`)

	// numericPrefixRe extracts the leading numeric run of a span. Label
	// patterns capture loosely ("[0-9,.]+"), so spans like "123.4.5" are
	// read up to the longest valid prefix.
	numericPrefixRe = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)`)
)

// ExtractAmount extracts a monetary value from a text span.
//
// Candidates are tried in priority order: a $-prefixed amount, a number
// followed by "USD", and finally any bare number as a last resort.
// Thousands separators are stripped before conversion. Returns ok=false
// when no candidate matches.
//
// Example:
//
//	amount, ok := ExtractAmount("Total (USD): $1,963.00") // 1963.00, true
//	amount, ok := ExtractAmount("no numbers here")        // 0, false
func ExtractAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	for _, re := range []*regexp.Regexp{dollarAmountRe, usdAmountRe, bareAmountRe} {
		if m := re.FindStringSubmatch(s); m != nil {
			if v, err := parseAmount(m[1]); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

// parseAmount converts a matched numeric span to a float, stripping
// thousands separators and tolerating trailing junk after the number.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if prefix := numericPrefixRe.FindString(s); prefix != "" {
		s = prefix
	}
	return strconv.ParseFloat(s, 64)
}
