// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// classifier.go implements the document-family predicates. Both
// predicates are vocabulary checks over lowercased text: presence of a
// term, not its count, drives the result, and scanning short-circuits on
// the first hit per category.
package docextract

import "strings"

// ugcIdentityTerms mark a document as being about UGC/creator work.
var ugcIdentityTerms = []string{
	"ugc", "user-generated content", "content creator", "creator agreement",
	"talent agreement", "influencer", "social media content",
}

// contractIdentityTerms mark a document as reading like a contract.
var contractIdentityTerms = []string{
	"agreement", "contract", "terms and conditions", "services provided",
	"term of agreement", "obligations",
}

// invoiceIdentityTerms mark a document as reading like an invoice.
var invoiceIdentityTerms = []string{
	"invoice", "bill to", "payment due", "total", "subtotal",
	"amount due", "pay to", "service",
}

// creatorIdentityTerms mark an invoice as being for creator services.
var creatorIdentityTerms = []string{
	"ugc", "content", "creator", "video", "photo", "social media",
	"post", "usage rights", "footage",
}

// IsUGCContract reports whether the text reads like a UGC creator
// contract: at least one UGC-identity term and at least one
// contract-identity term must both occur.
//
// A document containing only "influencer" (no contract term) is not a
// UGC contract.
func IsUGCContract(text string) bool {
	lower := strings.ToLower(text)
	return containsAny(lower, ugcIdentityTerms) && containsAny(lower, contractIdentityTerms)
}

// IsCreatorInvoice reports whether the text reads like an invoice for
// creator services: at least one invoice-identity term and at least one
// creator-identity term must both occur.
func IsCreatorInvoice(text string) bool {
	lower := strings.ToLower(text)
	return containsAny(lower, invoiceIdentityTerms) && containsAny(lower, creatorIdentityTerms)
}

// containsAny reports whether any term occurs in s, stopping at the
// first hit.
func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
