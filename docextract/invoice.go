// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// invoice.go implements the invoice field-extractor molecule. It
// branches on the creator-invoice classifier: UGC-style invoices get
// label patterns tuned to how creators actually bill, anything else gets
// a generic set. It composes:
//   - classifier.go: IsCreatorInvoice for branch selection
//   - patterns.go: the ordered pattern-table machinery
//   - dates.go / deliverables.go: field value parsing
//   - templates.go: known-layout overrides
package docextract

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UGC-invoice pattern tables. Client names typically appear after a
// "Bill to" style label.
var (
	invoiceUGCClientPatterns = []fieldPattern{
		pat(`(?i)bill to\s*(?:\n|:)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
		pat(`(?i)invoice to\s*(?:\n|:)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
		pat(`(?i)client\s*(?:\n|:)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
	}

	invoiceUGCAmountPatterns = []fieldPattern{
		pat(`(?i)total\s*(?:\(USD\))?\s*(?::|=|-)\s*\$?([0-9,.]+)`),
		pat(`(?i)\$\s*([0-9,.]+)\s*(?:USD)?`),
		pat(`(?i)amount due\s*(?::|=|-)\s*\$?([0-9,.]+)`),
		pat(`(?i)USD\s*([0-9,.]+)`),
	}

	invoiceUGCDueDatePatterns = []fieldPattern{
		pat(`(?i)(?:due date|payment due|due by|pay by)\s*(?::|=|-)\s*([A-Za-z0-9\s,./-]+?)(?:\n|$)`),
		pat(`(?i)due\s*(?::|=|-)\s*([A-Za-z0-9\s,./-]+?)(?:\n|$)`),
		pat(`(?i)next payment due\s*(?::|=|-)\s*([A-Za-z0-9\s,./-]+?)(?:\n|$)`),
	}

	invoiceUGCCreatorPatterns = []fieldPattern{
		pat(`(?i)(?:talent|creator|influencer|artist)\s*(?::|=|-|x)\s*([A-Za-z0-9\s&.,'-]+?)(?:\s+x|\s+UGC|\n|$)`),
		pat(`(?i)([A-Za-z\s]+?)\s+x\s+(?:UGC|content|video)`),
		pat(`(?i)(?:from|by)\s+([A-Za-z\s]+?)(?:\s+for|\s+to|\n|$)`),
	}
)

// Generic invoice pattern tables, used when the classifier does not
// recognize the document as a creator invoice.
var (
	invoiceGenericClientPatterns = []fieldPattern{
		pat(`(?i)(?:to|client|billed to|customer|bill to)\s*(?::|=|-)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
		pat(`(?i)bill\s+to\s*(?::|=|-)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
		pat(`(?i)customer\s*(?::|=|-)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
	}

	invoiceGenericAmountPatterns = []fieldPattern{
		pat(`(?i)(?:amount|total|sum|payment|grand total|total amount)\s*(?::|=|-)\s*\$?([0-9,.]+)`),
		pat(`(?i)total\s*(?::|=|-)\s*\$?([0-9,.]+)`),
		pat(`(?i)\$([0-9,.]+)[^0-9A-Za-z]*(?:total|amount|due)`),
	}

	invoiceGenericDueDatePatterns = []fieldPattern{
		pat(`(?i)(?:due date|payment due|due by|pay by)\s*(?::|=|-)\s*([A-Za-z0-9\s,./-]+?)(?:\n|$)`),
		pat(`(?i)(?:due|payment due)\s*(?::|=|-)\s*([A-Za-z0-9\s,./-]+?)(?:\n|$)`),
	}

	invoiceGenericCreatorPatterns = []fieldPattern{
		pat(`(?i)(?:from|vendor|issued by|creator)\s*(?::|=|-)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
		pat(`(?i)invoice\s+from\s*(?::|=|-)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
		pat(`(?i)([A-Za-z0-9\s&.,'-]+?)\n(?:invoice|bill)`),
	}
)

// Shared fallback tables applied after the branch-specific extraction.
var (
	// invoiceTitlePatterns recover a client name from an invoice title
	// such as "Vamp Network Invoice".
	invoiceTitlePatterns = []fieldPattern{
		pat(`(?i)([A-Za-z\s&]+)\s+Invoice`),
		pat(`(?i)Invoice\s+from\s+([A-Za-z\s&]+)`),
	}

	// invoiceAnyDatePatterns collect every date-looking span in the
	// document for the latest-date due-date heuristic.
	invoiceAnyDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:date|issued|created)\s*(?::|on)\s*([A-Za-z0-9\s,./-]+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)([A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4})`),
		regexp.MustCompile(`(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
	}

	emailRe = regexp.MustCompile(`([a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9._-]+)`)

	emailTokenSplitRe = regexp.MustCompile(`[._-]`)
)

var titleCaser = cases.Title(language.English)

// InvoiceExtractor extracts structured fields from invoice text.
type InvoiceExtractor struct {
	templates *TemplateTable
}

// NewInvoiceExtractor creates an InvoiceExtractor using the given
// template table. Pass DefaultTemplateTable() for the built-in layouts.
func NewInvoiceExtractor(templates *TemplateTable) *InvoiceExtractor {
	return &InvoiceExtractor{templates: templates}
}

// Extract pulls invoice fields from text. Every field is best-effort:
// a field that no pattern matches stays nil. Finalization (name cleanup,
// amount plausibility, rounding) is the PostProcessor's job.
func (e *InvoiceExtractor) Extract(text string) *InvoiceData {
	data := &InvoiceData{}

	if IsCreatorInvoice(text) {
		e.extractUGC(text, data)
	} else {
		e.extractGeneric(text, data)
	}

	// Known-layout overrides replace whatever the general tables found.
	if tpl := e.templates.Match(text, DocumentTypeInvoice); tpl != nil {
		applyInvoiceTemplate(tpl, text, data)
	}

	// The invoice title often carries the client name when no label did.
	if data.ClientName == nil {
		if v, ok := firstMatch(text, invoiceTitlePatterns); ok {
			data.ClientName = stringPtr(v)
		}
	}

	// When no labeled due date was found, the latest date in the
	// document is the most likely candidate.
	if data.DueDate == nil {
		if d, ok := latestDate(text); ok {
			data.DueDate = timePtr(d)
		}
	}

	return data
}

// extractUGC fills fields using the creator-invoice pattern tables.
func (e *InvoiceExtractor) extractUGC(text string, data *InvoiceData) {
	if v, ok := firstMatch(text, invoiceUGCClientPatterns); ok {
		data.ClientName = stringPtr(v)
	} else if name, ok := clientNameFromEmail(text); ok {
		data.ClientName = stringPtr(name)
	}

	if v, ok := firstAmount(text, invoiceUGCAmountPatterns); ok {
		data.Amount = floatPtr(v)
	}
	if d, ok := firstDate(text, invoiceUGCDueDatePatterns); ok {
		data.DueDate = timePtr(d)
	}
	if n, ok := CountDeliverables(text); ok {
		data.VideoCount = intPtr(n)
	}
	if v, ok := firstMatch(text, invoiceUGCCreatorPatterns); ok {
		data.CreatorName = stringPtr(v)
	}
}

// extractGeneric fills fields using the generic invoice pattern tables.
func (e *InvoiceExtractor) extractGeneric(text string, data *InvoiceData) {
	if v, ok := firstMatch(text, invoiceGenericClientPatterns); ok {
		data.ClientName = stringPtr(v)
	}
	if v, ok := firstAmount(text, invoiceGenericAmountPatterns); ok {
		data.Amount = floatPtr(v)
	}
	if d, ok := firstDate(text, invoiceGenericDueDatePatterns); ok {
		data.DueDate = timePtr(d)
	}
	if n, ok := CountDeliverables(text); ok {
		data.VideoCount = intPtr(n)
	}
	if v, ok := firstMatch(text, invoiceGenericCreatorPatterns); ok {
		data.CreatorName = stringPtr(v)
	}
}

// applyInvoiceTemplate applies template rules to invoice fields,
// overriding earlier extraction where the template pattern matches.
func applyInvoiceTemplate(tpl *Template, text string, data *InvoiceData) {
	for i := range tpl.Rules {
		rule := &tpl.Rules[i]
		span, ok := rule.value(text)
		if !ok {
			continue
		}
		switch rule.Field {
		case FieldClientName:
			data.ClientName = stringPtr(span)
		case FieldCreatorName:
			data.CreatorName = stringPtr(span)
		case FieldAmount:
			if v, err := parseAmount(span); err == nil {
				data.Amount = floatPtr(v)
			}
		case FieldDueDate:
			if d, parsed := ParseDate(span); parsed {
				data.DueDate = timePtr(d)
			}
		case FieldVideoCount:
			if n, ok := parseCount(span); ok {
				data.VideoCount = intPtr(n)
			}
		}
	}
}

// clientNameFromEmail derives a display name from the local part of the
// first email address in the text: "john.doe@brand.com" becomes
// "John Doe".
func clientNameFromEmail(text string) (string, bool) {
	m := emailRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	local := strings.SplitN(m[1], "@", 2)[0]
	tokens := emailTokenSplitRe.Split(local, -1)
	var words []string
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		words = append(words, titleCaser.String(tok))
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

// latestDate collects every parseable date in the document and returns
// the latest one. When an invoice has several dates (issue date, service
// date, due date), the due date is usually last in calendar order.
func latestDate(text string) (latest time.Time, found bool) {
	for _, re := range invoiceAnyDatePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 || m[1] == "" {
				continue
			}
			d, ok := ParseDate(strings.TrimSpace(m[1]))
			if !ok {
				continue
			}
			if !found || d.After(latest) {
				latest = d
				found = true
			}
		}
	}
	return latest, found
}
