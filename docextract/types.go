// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents (creator invoices and
// creator contracts).
//
// types.go defines the document types and extracted-record types shared
// by the extraction molecules:
//   - dates.go: ParseDate for loosely formatted dates
//   - amounts.go: ExtractAmount for monetary values
//   - classifier.go: document-family predicates
//   - deliverables.go: CountDeliverables for content-item counts
//   - invoice.go / contract.go: per-type field extractors
//   - postprocess.go: cross-field sanity correction
//   - processor.go: the Processor organism (façade)
package docextract

import "time"

// DocumentType identifies the kind of document being processed.
type DocumentType string

const (
	// DocumentTypeInvoice is a creator invoice.
	DocumentTypeInvoice DocumentType = "Invoice"

	// DocumentTypeContract is a creator/brand contract.
	DocumentTypeContract DocumentType = "Contract"
)

// Valid reports whether the document type is one of the supported kinds.
func (t DocumentType) Valid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypeContract
}

// ExtractedFields holds the fields common to invoices and contracts.
// Every field is independently optional: nil means "not found", which is
// a valid terminal state rather than an error.
type ExtractedFields struct {
	// CreatorName is the counterparty/creator name, if found
	CreatorName *string `json:"creatorName"`

	// ClientName is the billed/contracting client name, if found.
	// Trailing corporate suffixes (Ltd, LLC, ...) are stripped during
	// post-processing and the name is capped at a bounded word count.
	ClientName *string `json:"clientName"`

	// Amount is the monetary value, non-negative, rounded to 2 decimal
	// places during post-processing
	Amount *float64 `json:"amount"`

	// VideoCount is the number of content deliverables, positive when set
	VideoCount *int `json:"videoCount"`
}

// InvoiceData is the record extracted from an invoice.
type InvoiceData struct {
	ExtractedFields

	// DueDate is the payment due date, if found
	DueDate *time.Time `json:"dueDate"`
}

// ContractData is the record extracted from a contract.
//
// When both StartDate and EndDate are present, EndDate >= StartDate is
// the intended relationship but is not enforced here: the extractor is a
// drafting aid and the caller supports manual correction.
type ContractData struct {
	ExtractedFields

	// StartDate is the effective/commencement date, if found
	StartDate *time.Time `json:"startDate"`

	// EndDate is the termination/expiry date, if found or derived from a
	// stated term or usage-rights duration
	EndDate *time.Time `json:"endDate"`
}

// Result wraps the outcome of processing a single document. Exactly one
// of Invoice or Contract is non-nil, matching Type.
type Result struct {
	// Type is the document type that was processed
	Type DocumentType `json:"type"`

	// Invoice is set when Type is DocumentTypeInvoice
	Invoice *InvoiceData `json:"invoice,omitempty"`

	// Contract is set when Type is DocumentTypeContract
	Contract *ContractData `json:"contract,omitempty"`
}

// stringPtr returns a pointer to s. Small helper for optional fields.
func stringPtr(s string) *string { return &s }

// floatPtr returns a pointer to f.
func floatPtr(f float64) *float64 { return &f }

// intPtr returns a pointer to n.
func intPtr(n int) *int { return &n }

// timePtr returns a pointer to t.
func timePtr(t time.Time) *time.Time { return &t }
