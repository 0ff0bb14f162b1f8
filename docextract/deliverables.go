// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// deliverables.go implements the deliverable-count molecule: a
// prioritized regex scan for "N videos" style phrases, with a
// proximity-based numeric fallback around content-related terms.
package docextract

import (
	"regexp"
	"strconv"
	"strings"
)

// deliverableCountPatterns are tried in order; the first match wins.
var deliverableCountPatterns = []*regexp.Regexp{
	// "3 videos", "2 content items", "5 posts"
	regexp.MustCompile(`(?i)(\d+)\s*(?:video|content item|post|reel)`),
	// "videos: 3", "video x 2", "reels * 4"
	regexp.MustCompile(`(?i)(?:video|content item|post|reel)s?\s*(?::|x|\*)\s*(\d+)`),
	// "deliver 3 videos", "produce 2 posts"
	regexp.MustCompile(`(?i)(?:deliver|create|produce)\s*(\d+)\s*(?:video|content|post)`),
}

// proximityTerms are scanned for a standalone number nearby when no
// direct pattern matches.
var proximityTerms = []string{"video", "content", "post", "reel", "deliverable"}

// proximityWindow is the number of characters inspected on each side of
// a proximity term.
const proximityWindow = 10

var standaloneNumberRe = regexp.MustCompile(`\b(\d+)\b`)

// CountDeliverables finds the number of video/content deliverables a
// document references. Returns ok=false when nothing is found anywhere.
// Counts are positive: a stated zero is treated as not found, leaving
// the field to downstream defaults.
//
// Example:
//
//	n, ok := CountDeliverables("Please deliver 3 videos by Friday") // 3, true
func CountDeliverables(text string) (int, bool) {
	for _, re := range deliverableCountPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n, true
			}
		}
	}

	// Fallback: a standalone number within a few characters of a
	// content-related term.
	lower := strings.ToLower(text)
	for _, term := range proximityTerms {
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}
		start := idx - proximityWindow
		if start < 0 {
			start = 0
		}
		end := idx + len(term) + proximityWindow
		if end > len(text) {
			end = len(text)
		}
		if m := standaloneNumberRe.FindStringSubmatch(text[start:end]); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n, true
			}
		}
	}

	return 0, false
}
