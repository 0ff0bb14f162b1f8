// Package logging provides structured logging for the agency document
// backend.
//
// redact.go implements personal-data redaction for log output. Invoices
// and contracts carry email addresses and phone numbers of real clients
// and creators; log files must not become a second copy of that data.
package logging

import "regexp"

// RedactedPlaceholder replaces redacted spans in log output.
const RedactedPlaceholder = "[REDACTED]"

// piiPatterns are the spans stripped from logged document text.
var piiPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),

	// Phone-number-shaped digit runs: optional country code, separators
	regexp.MustCompile(`(?:\+?\d{1,3}[\s.-])?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`),
}

// Redact strips email addresses and phone numbers from a string.
//
// Example:
//
//	Redact("contact billing@theloft.com")
//	// "contact [REDACTED]"
func Redact(s string) string {
	if s == "" {
		return s
	}
	for _, re := range piiPatterns {
		s = re.ReplaceAllString(s, RedactedPlaceholder)
	}
	return s
}

// Preview returns a redacted, length-bounded excerpt of document text
// suitable for debug logging. Truncation happens before redaction so a
// placeholder is never cut in half.
func Preview(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(text) > maxLen {
		text = text[:maxLen]
	}
	return Redact(text)
}
