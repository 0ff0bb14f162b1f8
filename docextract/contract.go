// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// contract.go implements the contract field-extractor molecule. It
// mirrors the two-track structure of invoice.go (UGC vs generic pattern
// tables) and adds the date logic that distinguishes contracts: an end
// date can be stated outright, derived from a start date plus a stated
// term, derived from a usage-rights duration, or defaulted from a bare
// "N days" phrase when the document carries no dates at all.
package docextract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// UGC-contract pattern tables. The client is typically named in the
// opening "this agreement is between ..." clause.
var (
	contractUGCClientPatterns = []fieldPattern{
		pat(`(?i)(?:this agreement is between|agreement between)\s+([A-Za-z0-9\s&.,'-]+?)\s+(?:\(|and)`),
		pat(`(?i)(?:client|company|brand)\s*(?::|is|=)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$|\()`),
		pat(`(?i)(?:hereinafter\s+["“”]?The Client["“”]?)(?:\s+or\s+["“”]?[^"]+["“”]?)?[^A-Za-z]*([A-Za-z0-9\s&.,'-]+?)(?:\n|$|\()`),
	}

	contractUGCCreatorPatterns = []fieldPattern{
		pat(`(?i)(?:and|between)\s+([A-Za-z0-9\s&.,'-]+?)\s+(?:\(|hereinafter)`),
		pat(`(?i)(?:hereinafter\s+["“”]?UGC Artist["“”]?)(?:\s+or\s+["“”]?[^"]+["“”]?)?[^A-Za-z]*([A-Za-z0-9\s&.,'-]+?)(?:\n|$|\()`),
		pat(`(?i)(?:the talent|ugc artist|influencer|creator)\s*(?::|is|=)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$|\()`),
	}

	contractUGCAmountPatterns = []fieldPattern{
		pat(`(?i)(?:rate of|payment|fee|charge|compensation)\s*(?::|of|=)\s*[$£€]?([0-9,.]+)`),
		pat(`(?i)[$£€]\s*([0-9,.]+)\s*(?:USD|GBP|EUR)?`),
		pat(`(?i)(?:USD|GBP|EUR)\s*([0-9,.]+)`),
	}

	contractUGCStartPatterns = []fieldPattern{
		pat(`(?i)(?:effective|commence|start|begin)\s+(?:date|on)\s*(?::|is|=)?\s*([A-Za-z0-9\s,/-]+?)(?:\n|$|\.)`),
		pat(`(?i)(?:agreement|contract)\s+(?:date|dated)\s*(?::|is|=)?\s*([A-Za-z0-9\s,/-]+?)(?:\n|$|\.)`),
		pat(`(?i)(?:as of|from)\s+(?:the)?\s*(?:date)?\s*([A-Za-z0-9\s,/-]+?)(?:\n|$|\.)`),
	}

	contractUGCEndPatterns = []fieldPattern{
		pat(`(?i)(?:terminat|expir|end|conclud)(?:e|es|ing)?\s+(?:date|on)\s*(?::|is|=)?\s*([A-Za-z0-9\s,/-]+?)(?:\n|$|\.)`),
		pat(`(?i)(?:until|through)\s+([A-Za-z0-9\s,/-]+?)(?:\n|$|\.)`),
	}

	// contractDeliverablePatterns refine the generic deliverable count
	// with contract-specific phrasings like "3 x video".
	contractDeliverablePatterns = []fieldPattern{
		pat(`(?i)(\d+)\s*(?:x|×)?\s*(?:video|content item|post|reel)`),
		pat(`(?i)(?:deliver|create|produce)\s*(\d+)\s*(?:video|content item|post|reel)`),
		pat(`(?i)(?:video|content item|post|reel)s?\s*(?::|x|×|\*)\s*(\d+)`),
	}
)

// Generic contract pattern tables.
var (
	contractGenericCreatorPatterns = []fieldPattern{
		pat(`(?i)(?:creator|talent|influencer|contractor|party)\s*(?::|=)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
		pat(`(?i)(?:between|agreement between)\s*([A-Za-z0-9\s&.,'-]+?)\s+and`),
		pat(`(?i)([A-Za-z0-9\s&.,'-]+?)\s+(?:hereinafter|referred to as)\s+(?:the creator|the talent|the influencer)`),
	}

	contractGenericClientPatterns = []fieldPattern{
		pat(`(?i)(?:client|company|brand|second party|customer)\s*(?::|=)\s*([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
		pat(`(?i)and\s+([A-Za-z0-9\s&.,'-]+?)\s+(?:hereinafter|referred to as)\s+(?:the client|the company|the brand)`),
		pat(`(?i)agreement between(?:.*?)and\s+([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`),
	}

	contractGenericAmountPatterns = []fieldPattern{
		pat(`(?i)(?:compensation|payment|fee|amount|consideration)\s*(?::|=)\s*[$£€]?([0-9,.]+)`),
		pat(`(?i)payment\s+(?:of|in the amount of)\s+[$£€]?([0-9,.]+)`),
		pat(`(?i)[$£€]([0-9,.]+)[^0-9A-Za-z]*(?:compensation|payment|fee)`),
	}

	contractGenericStartPatterns = []fieldPattern{
		pat(`(?i)(?:start date|commencement date|effective date|begins on)\s*(?::|=)\s*([A-Za-z0-9\s,/-]+?)(?:\n|$)`),
		pat(`(?i)(?:agreement|contract)\s+(?:is effective|commences|begins|starts)\s+(?:on|as of)\s+([A-Za-z0-9\s,/-]+?)(?:\n|$)`),
	}

	contractGenericEndPatterns = []fieldPattern{
		pat(`(?i)(?:end date|termination date|expiration date|concludes on)\s*(?::|=)\s*([A-Za-z0-9\s,/-]+?)(?:\n|$)`),
		pat(`(?i)(?:shall|will)\s+(?:terminate|end|expire|conclude)\s+(?:on|as of)\s+([A-Za-z0-9\s,/-]+?)(?:\n|$)`),
	}
)

// Duration phrasing tables. The captured group is the count; the unit is
// read from the whole match.
var (
	contractTermPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:for|of|term)\s+(\d+)\s+(?:days|months|years)`),
		regexp.MustCompile(`(?i)(\d+)\s+(?:days|months|years)(?:\s+from|after)`),
		regexp.MustCompile(`(?i)(?:valid for|duration of|period of)\s+(\d+)\s+(?:days|months|years)`),
	}

	contractUsagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:usage rights|license)\s+(?:for|of)\s+(\d+)\s+(?:days|months|years)`),
		regexp.MustCompile(`(?i)(?:rights|license)\s+(?:valid for|duration of|period of)\s+(\d+)\s+(?:days|months|years)`),
	}

	durationUnitRe = regexp.MustCompile(`(?i)(days|months|years)`)

	// bareDaysRe is the last-resort "90 days" phrase used when a contract
	// carries no dates at all, and also drives the usage-window template
	// derivation.
	bareDaysRe = regexp.MustCompile(`(?i)(\d+)\s*days`)

	// signatureDateRe matches a labeled signature date line such as
	// "Date: 03/01/2025".
	signatureDateRe = regexp.MustCompile(`(?i)Date\s*[:.]\s*(\d{1,2}\s*/\s*\d{1,2}\s*/\s*\d{4})`)
)

// ContractExtractor extracts structured fields from contract text.
type ContractExtractor struct {
	templates *TemplateTable

	// now is the clock used for date defaults; overridable in tests
	now func() time.Time
}

// NewContractExtractor creates a ContractExtractor using the given
// template table. Pass DefaultTemplateTable() for the built-in layouts.
func NewContractExtractor(templates *TemplateTable) *ContractExtractor {
	return &ContractExtractor{
		templates: templates,
		now:       time.Now,
	}
}

// Extract pulls contract fields from text. Every field is best-effort:
// a field that no pattern matches stays nil.
func (e *ContractExtractor) Extract(text string) *ContractData {
	data := &ContractData{}

	if IsUGCContract(text) {
		e.extractUGC(text, data)
	} else {
		e.extractGeneric(text, data)
	}

	if tpl := e.templates.Match(text, DocumentTypeContract); tpl != nil {
		e.applyTemplate(tpl, text, data)
	}

	return data
}

// extractUGC fills fields using the UGC-contract pattern tables and the
// full date-derivation chain.
func (e *ContractExtractor) extractUGC(text string, data *ContractData) {
	if v, ok := firstMatch(text, contractUGCClientPatterns); ok {
		data.ClientName = stringPtr(v)
	}
	if v, ok := firstMatch(text, contractUGCCreatorPatterns); ok {
		data.CreatorName = stringPtr(v)
	}
	if v, ok := firstAmount(text, contractUGCAmountPatterns); ok {
		data.Amount = floatPtr(v)
	}

	if d, ok := firstDate(text, contractUGCStartPatterns); ok {
		data.StartDate = timePtr(d)
	}
	if d, ok := firstDate(text, contractUGCEndPatterns); ok {
		data.EndDate = timePtr(d)
	}

	// A stated term plus a start date yields an end date.
	if n, unit, ok := findDuration(text, contractTermPatterns); ok {
		if data.StartDate != nil && data.EndDate == nil {
			data.EndDate = timePtr(addDuration(*data.StartDate, n, unit))
		}
	}

	if n, ok := CountDeliverables(text); ok {
		data.VideoCount = intPtr(n)
	}
	if n, ok := firstInt(text, contractDeliverablePatterns); ok {
		data.VideoCount = intPtr(n)
	}

	// Usage-rights duration is an alternative source of the end date.
	if data.EndDate == nil {
		if n, unit, ok := findDuration(text, contractUsagePatterns); ok && data.StartDate != nil {
			data.EndDate = timePtr(addDuration(*data.StartDate, n, unit))
		}
	}

	// No dates anywhere: a bare "N days" phrase makes the window start
	// today. An empty window beats none for a draft record.
	if data.StartDate == nil && data.EndDate == nil {
		if m := bareDaysRe.FindStringSubmatch(text); m != nil {
			if days, err := strconv.Atoi(m[1]); err == nil {
				start := midnightUTC(e.now())
				data.StartDate = timePtr(start)
				data.EndDate = timePtr(start.AddDate(0, 0, days))
			}
		}
	}
}

// extractGeneric fills fields using the generic contract pattern tables.
func (e *ContractExtractor) extractGeneric(text string, data *ContractData) {
	if v, ok := firstMatch(text, contractGenericCreatorPatterns); ok {
		data.CreatorName = stringPtr(v)
	}
	if v, ok := firstMatch(text, contractGenericClientPatterns); ok {
		data.ClientName = stringPtr(v)
	}
	if v, ok := firstAmount(text, contractGenericAmountPatterns); ok {
		data.Amount = floatPtr(v)
	}
	if d, ok := firstDate(text, contractGenericStartPatterns); ok {
		data.StartDate = timePtr(d)
	}
	if d, ok := firstDate(text, contractGenericEndPatterns); ok {
		data.EndDate = timePtr(d)
	}
	if n, ok := CountDeliverables(text); ok {
		data.VideoCount = intPtr(n)
	}
}

// applyTemplate applies template rules to contract fields, then the
// usage-window date derivation when the template calls for it.
func (e *ContractExtractor) applyTemplate(tpl *Template, text string, data *ContractData) {
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
		case FieldStartDate:
			if d, parsed := ParseDate(span); parsed {
				data.StartDate = timePtr(d)
			}
		case FieldEndDate:
			if d, parsed := ParseDate(span); parsed {
				data.EndDate = timePtr(d)
			}
		case FieldVideoCount:
			if n, ok := parseCount(span); ok {
				data.VideoCount = intPtr(n)
			}
		}
	}

	if !tpl.UsageWindow {
		return
	}

	// "N Days" usage window anchored on the labeled signature date, or
	// on today when the signature line is blank.
	m := bareDaysRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return
	}

	if sig := signatureDateRe.FindStringSubmatch(text); sig != nil {
		if start, ok := ParseDate(sig[1]); ok {
			data.StartDate = timePtr(start)
			data.EndDate = timePtr(start.AddDate(0, 0, days))
			return
		}
	}
	start := midnightUTC(e.now())
	data.StartDate = timePtr(start)
	data.EndDate = timePtr(start.AddDate(0, 0, days))
}

// findDuration runs duration patterns in order and returns the first
// count plus its unit (days, months or years).
func findDuration(text string, patterns []*regexp.Regexp) (int, string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil || m[1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		unit := strings.ToLower(durationUnitRe.FindString(m[0]))
		if unit == "" {
			continue
		}
		return n, unit, true
	}
	return 0, "", false
}

// addDuration advances a date by a count of days, months or years using
// native calendar arithmetic.
func addDuration(t time.Time, n int, unit string) time.Time {
	switch unit {
	case "days":
		return t.AddDate(0, 0, n)
	case "months":
		return t.AddDate(0, n, 0)
	case "years":
		return t.AddDate(n, 0, 0)
	}
	return t
}

// midnightUTC truncates a time to its UTC calendar date.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
