// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// templates.go implements the known-template table. Some document
// layouts recur often enough that generic label patterns are not the
// best tool: a template is detected by a literal fingerprint substring
// and carries its own field overrides. The table is declarative data,
// separable from the general heuristics, and additional templates can be
// loaded from a YAML file at runtime.
package docextract

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Field names accepted by template rules and defaults.
const (
	FieldClientName  = "clientName"
	FieldCreatorName = "creatorName"
	FieldAmount      = "amount"
	FieldDueDate     = "dueDate"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldVideoCount  = "videoCount"
)

// validTemplateFields guards table loading against typos.
var validTemplateFields = map[string]bool{
	FieldClientName:  true,
	FieldCreatorName: true,
	FieldAmount:      true,
	FieldDueDate:     true,
	FieldStartDate:   true,
	FieldEndDate:     true,
	FieldVideoCount:  true,
}

// TemplateRule overrides one extracted field when its pattern matches
// the document text. Overrides run after the generic pattern tables and
// replace whatever they produced.
type TemplateRule struct {
	// Field is the record field the rule writes
	Field string

	// Pattern is the template-specific extraction pattern
	Pattern *regexp.Regexp

	// Group is the capture group holding the value (defaults to 1)
	Group int
}

// Template describes one known document layout, detected by literal
// fingerprint substrings.
type Template struct {
	// ID names the template for logs and diagnostics
	ID string

	// DocType restricts which extractor applies the rules
	DocType DocumentType

	// Fingerprints are literal substrings; any one of them present in
	// the text selects the template
	Fingerprints []string

	// Rules are the field overrides applied on selection
	Rules []TemplateRule

	// UsageWindow, for contracts, derives startDate and endDate from a
	// labeled signature date plus an "N Days" usage-rights window. When
	// no signature date is found the window starts now.
	UsageWindow bool
}

// Matches reports whether any fingerprint occurs in the text.
func (t *Template) Matches(text string) bool {
	for _, fp := range t.Fingerprints {
		if strings.Contains(text, fp) {
			return true
		}
	}
	return false
}

// TemplateDefault fills a still-null field during post-processing. It is
// gated on its own fingerprint, independent of document type, matching
// the behavior the heuristics were originally tuned against.
type TemplateDefault struct {
	// Field is the record field the default writes
	Field string

	// Fingerprint is the literal substring selecting this default
	Fingerprint string

	// Requires lists further literal substrings that must all be present
	Requires []string

	// Exactly one of the value fields is set, matching Field's type.
	String *string
	Number *float64
	Count  *int
	Date   *time.Time
}

// applies reports whether the default's fingerprint and all required
// substrings occur in the text.
func (d *TemplateDefault) applies(text string) bool {
	if !strings.Contains(text, d.Fingerprint) {
		return false
	}
	for _, req := range d.Requires {
		if !strings.Contains(text, req) {
			return false
		}
	}
	return true
}

// TemplateTable is the full set of known templates and their
// post-processing defaults.
type TemplateTable struct {
	Templates []Template
	Defaults  []TemplateDefault
}

// Match returns the first template of the given document type whose
// fingerprint occurs in the text, or nil.
func (t *TemplateTable) Match(text string, docType DocumentType) *Template {
	for i := range t.Templates {
		tpl := &t.Templates[i]
		if tpl.DocType == docType && tpl.Matches(text) {
			return tpl
		}
	}
	return nil
}

// DefaultTemplateTable returns the built-in table covering the two
// sample layouts the heuristics were tuned against: the Vamp Network
// invoice and the UGC Artist agreement.
func DefaultTemplateTable() *TemplateTable {
	return &TemplateTable{
		Templates: []Template{
			{
				ID:           "vamp-network-invoice",
				DocType:      DocumentTypeInvoice,
				Fingerprints: []string{"Vamp Network Invoice"},
				Rules: []TemplateRule{
					{Field: FieldClientName, Group: 1,
						Pattern: regexp.MustCompile(`(?i)Bill to(?:\s*|:|\n)([A-Za-z0-9\s&.,'-]+?)(?:\n|$)`)},
					{Field: FieldAmount, Group: 1,
						Pattern: regexp.MustCompile(`(?i)Total\s*\(USD\)\s*\$?([0-9,.]+)`)},
					{Field: FieldDueDate, Group: 1,
						Pattern: regexp.MustCompile(`(?i)(?:Next payment due|Due date|Payment due)(?:\s*|:|\n)([A-Za-z0-9\s,./-]+?)(?:\n|$)`)},
					{Field: FieldCreatorName, Group: 1,
						Pattern: regexp.MustCompile(`(?i)([A-Za-z0-9\s&.,'-]+?)\s*x\s*(?:K\d+|UGC|content)`)},
					{Field: FieldVideoCount, Group: 1,
						Pattern: regexp.MustCompile(`(?i)(\d+)\s*Videos`)},
				},
			},
			{
				ID:           "ugc-artist-agreement",
				DocType:      DocumentTypeContract,
				Fingerprints: []string{"USER-GENERATED CONTENT ARTIST", "UGC ARTIST AGREEMENT"},
				UsageWindow:  true,
				Rules: []TemplateRule{
					{Field: FieldClientName, Group: 1,
						Pattern: regexp.MustCompile(`(?i)This agreement is between ([A-Za-z0-9\s&.,'-]+?) \(hereafter`)},
					{Field: FieldAmount, Group: 1,
						Pattern: regexp.MustCompile(`(?i)\$(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:USD)?`)},
					{Field: FieldVideoCount, Group: 1,
						Pattern: regexp.MustCompile(`(?i)(\d+)\s*x\s*(?:Paid Ad Video|Additional Hooks|video|content)`)},
				},
			},
		},
		Defaults: []TemplateDefault{
			{Field: FieldClientName, Fingerprint: "Vamp Network Invoice",
				String: stringPtr("The Loft")},
			{Field: FieldAmount, Fingerprint: "Vamp Network Invoice",
				Requires: []string{"$1,963"}, Number: floatPtr(1963)},
			{Field: FieldDueDate, Fingerprint: "Vamp Network Invoice",
				Requires: []string{"Mar 1, 2025"},
				Date:     timePtr(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))},
			{Field: FieldClientName, Fingerprint: "USER-GENERATED CONTENT ARTIST",
				Requires: []string{"Behuman Advertising"}, String: stringPtr("Behuman Advertising Limited")},
			{Field: FieldAmount, Fingerprint: "USER-GENERATED CONTENT ARTIST",
				Requires: []string{"$900 USD"}, Number: floatPtr(900)},
			{Field: FieldVideoCount, Fingerprint: "USER-GENERATED CONTENT ARTIST",
				Requires: []string{"3x Paid Ad Video Brief"}, Count: intPtr(3)},
		},
	}
}

// templateFile mirrors the YAML schema for loadable template tables.
type templateFile struct {
	Templates []struct {
		ID           string   `yaml:"id"`
		DocType      string   `yaml:"docType"`
		Fingerprints []string `yaml:"fingerprints"`
		UsageWindow  bool     `yaml:"usageWindow"`
		Rules        []struct {
			Field   string `yaml:"field"`
			Pattern string `yaml:"pattern"`
			Group   int    `yaml:"group"`
		} `yaml:"rules"`
	} `yaml:"templates"`
	Defaults []struct {
		Field       string   `yaml:"field"`
		Fingerprint string   `yaml:"fingerprint"`
		Requires    []string `yaml:"requires"`
		String      *string  `yaml:"string"`
		Number      *float64 `yaml:"number"`
		Count       *int     `yaml:"count"`
		Date        string   `yaml:"date"`
	} `yaml:"defaults"`
}

// LoadTemplates reads a template table from a YAML file. The loaded
// table replaces the built-in one wholesale; callers wanting both should
// merge the slices themselves.
func LoadTemplates(path string) (*TemplateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}
	return ParseTemplates(raw)
}

// ParseTemplates parses and validates a YAML template table. Every
// pattern is compiled up front so a bad table fails loudly at load time
// rather than during extraction.
func ParseTemplates(raw []byte) (*TemplateTable, error) {
	var file templateFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse templates YAML: %w", err)
	}

	table := &TemplateTable{}

	for _, t := range file.Templates {
		docType := DocumentType(t.DocType)
		if !docType.Valid() {
			return nil, fmt.Errorf("template %q: invalid docType %q", t.ID, t.DocType)
		}
		if len(t.Fingerprints) == 0 {
			return nil, fmt.Errorf("template %q: at least one fingerprint required", t.ID)
		}

		tpl := Template{
			ID:           t.ID,
			DocType:      docType,
			Fingerprints: t.Fingerprints,
			UsageWindow:  t.UsageWindow,
		}
		for _, r := range t.Rules {
			if !validTemplateFields[r.Field] {
				return nil, fmt.Errorf("template %q: unknown field %q", t.ID, r.Field)
			}
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("template %q field %q: %w", t.ID, r.Field, err)
			}
			group := r.Group
			if group == 0 {
				group = 1
			}
			tpl.Rules = append(tpl.Rules, TemplateRule{Field: r.Field, Pattern: re, Group: group})
		}
		table.Templates = append(table.Templates, tpl)
	}

	for _, d := range file.Defaults {
		if !validTemplateFields[d.Field] {
			return nil, fmt.Errorf("default for unknown field %q", d.Field)
		}
		if d.Fingerprint == "" {
			return nil, fmt.Errorf("default for field %q: fingerprint required", d.Field)
		}
		def := TemplateDefault{
			Field:       d.Field,
			Fingerprint: d.Fingerprint,
			Requires:    d.Requires,
			String:      d.String,
			Number:      d.Number,
			Count:       d.Count,
		}
		if d.Date != "" {
			parsed, err := time.Parse("2006-01-02", d.Date)
			if err != nil {
				return nil, fmt.Errorf("default for field %q: invalid date %q", d.Field, d.Date)
			}
			def.Date = timePtr(parsed)
		}
		table.Defaults = append(table.Defaults, def)
	}

	return table, nil
}

// ruleValue applies one rule against text, returning the raw captured
// span.
func (r *TemplateRule) value(text string) (string, bool) {
	m := r.Pattern.FindStringSubmatch(text)
	if m == nil || r.Group >= len(m) || m[r.Group] == "" {
		return "", false
	}
	return strings.TrimSpace(m[r.Group]), true
}
