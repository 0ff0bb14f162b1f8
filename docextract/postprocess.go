// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// postprocess.go implements the cross-field sanity-correction molecule.
// First-match regex extraction is error-prone on real documents, so the
// finalization pass trims runaway client names, re-derives implausible
// amounts from alternative candidates, applies known-template defaults,
// and normalizes precision. The plausibility window and
// median-of-candidates rule are a deliberate, simple robustness
// heuristic, not a principled estimator.
package docextract

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// corporateSuffixRe strips trailing corporate-entity tokens from a
// client name.
var corporateSuffixRe = regexp.MustCompile(`(?i)(?:ltd|llc|inc|limited|corp|corporation)\.?$`)

// candidateAmountRes are the rescan patterns used when the extracted
// amount falls outside the plausibility window: every $-amount and every
// bare 3+ digit number with cents in the document is a candidate.
var candidateAmountRes = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*([0-9,.]+)`),
	regexp.MustCompile(`(\d{3,})(?:\.\d{2})`),
}

// PostProcessorConfig holds the tunable bounds of the finalization pass.
type PostProcessorConfig struct {
	// AmountMin/AmountMax is the plausibility window: an amount outside
	// it triggers the candidate rescan
	AmountMin float64
	AmountMax float64

	// CandidateMin/CandidateMax bound which rescanned values are kept as
	// replacement candidates
	CandidateMin float64
	CandidateMax float64

	// MaxClientNameLen is the length above which a client name is capped
	// to MaxClientNameWords words
	MaxClientNameLen int

	// MaxClientNameWords is the word cap for runaway client names
	MaxClientNameWords int
}

// DefaultPostProcessorConfig returns the windows the heuristics were
// tuned with.
func DefaultPostProcessorConfig() PostProcessorConfig {
	return PostProcessorConfig{
		AmountMin:          1,
		AmountMax:          1000000,
		CandidateMin:       10,
		CandidateMax:       100000,
		MaxClientNameLen:   60,
		MaxClientNameWords: 4,
	}
}

// PostProcessor applies the shared finalization steps to extracted
// records. Finalization is idempotent: running it twice on an
// already-finalized record changes nothing.
type PostProcessor struct {
	config    PostProcessorConfig
	templates *TemplateTable
}

// NewPostProcessor creates a PostProcessor with the given configuration
// and template table.
func NewPostProcessor(config PostProcessorConfig, templates *TemplateTable) *PostProcessor {
	return &PostProcessor{config: config, templates: templates}
}

// FinalizeInvoice runs the finalization steps on an invoice record and
// returns the same record.
func (p *PostProcessor) FinalizeInvoice(data *InvoiceData, text string) *InvoiceData {
	p.finalizeCommon(&data.ExtractedFields, text)

	for i := range p.templates.Defaults {
		def := &p.templates.Defaults[i]
		if !def.applies(text) {
			continue
		}
		switch def.Field {
		case FieldDueDate:
			if data.DueDate == nil && def.Date != nil {
				data.DueDate = timePtr(*def.Date)
			}
		default:
			applyFieldDefault(def, &data.ExtractedFields)
		}
	}

	p.roundAmount(&data.ExtractedFields)
	return data
}

// FinalizeContract runs the finalization steps on a contract record and
// returns the same record. Contracts additionally default the
// deliverable count to 1: a contract with no stated count covers at
// least one piece of content.
func (p *PostProcessor) FinalizeContract(data *ContractData, text string) *ContractData {
	p.finalizeCommon(&data.ExtractedFields, text)

	for i := range p.templates.Defaults {
		def := &p.templates.Defaults[i]
		if !def.applies(text) {
			continue
		}
		switch def.Field {
		case FieldStartDate:
			if data.StartDate == nil && def.Date != nil {
				data.StartDate = timePtr(*def.Date)
			}
		case FieldEndDate:
			if data.EndDate == nil && def.Date != nil {
				data.EndDate = timePtr(*def.Date)
			}
		default:
			applyFieldDefault(def, &data.ExtractedFields)
		}
	}

	p.roundAmount(&data.ExtractedFields)

	if data.VideoCount == nil {
		data.VideoCount = intPtr(1)
	}
	return data
}

// finalizeCommon applies the type-independent steps: client-name
// cleanup, last-resort amount extraction, and plausibility correction.
func (p *PostProcessor) finalizeCommon(fields *ExtractedFields, text string) {
	if fields.ClientName != nil {
		fields.ClientName = stringPtr(p.cleanClientName(*fields.ClientName))
	}

	if fields.Amount == nil {
		if v, ok := ExtractAmount(text); ok {
			fields.Amount = floatPtr(v)
		}
	}

	if fields.Amount != nil && (*fields.Amount < p.config.AmountMin || *fields.Amount > p.config.AmountMax) {
		if v, ok := p.medianCandidateAmount(text); ok {
			fields.Amount = floatPtr(v)
		}
	}
}

// cleanClientName strips trailing corporate suffixes and caps runaway
// names at a bounded word count.
func (p *PostProcessor) cleanClientName(name string) string {
	name = corporateSuffixRe.ReplaceAllString(name, "")
	name = strings.TrimRight(name, " \t")

	if len(name) > p.config.MaxClientNameLen {
		words := strings.Fields(name)
		if len(words) > p.config.MaxClientNameWords {
			name = strings.Join(words[:p.config.MaxClientNameWords], " ")
		}
	}
	return name
}

// medianCandidateAmount rescans the full text for alternative amount
// candidates inside the candidate window and returns their median. An
// empty candidate set leaves the implausible value in place.
func (p *PostProcessor) medianCandidateAmount(text string) (float64, bool) {
	var candidates []float64
	for _, re := range candidateAmountRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 || m[1] == "" {
				continue
			}
			v, err := parseAmount(m[1])
			if err != nil {
				continue
			}
			if v >= p.config.CandidateMin && v <= p.config.CandidateMax {
				candidates = append(candidates, v)
			}
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	sort.Float64s(candidates)
	return candidates[len(candidates)/2], true
}

// applyFieldDefault fills a still-null common field from a template
// default.
func applyFieldDefault(def *TemplateDefault, fields *ExtractedFields) {
	switch def.Field {
	case FieldClientName:
		if fields.ClientName == nil && def.String != nil {
			fields.ClientName = stringPtr(*def.String)
		}
	case FieldCreatorName:
		if fields.CreatorName == nil && def.String != nil {
			fields.CreatorName = stringPtr(*def.String)
		}
	case FieldAmount:
		if fields.Amount == nil && def.Number != nil {
			fields.Amount = floatPtr(*def.Number)
		}
	case FieldVideoCount:
		if fields.VideoCount == nil && def.Count != nil {
			fields.VideoCount = intPtr(*def.Count)
		}
	}
}

// roundAmount clamps the amount to 2 decimal places.
func (p *PostProcessor) roundAmount(fields *ExtractedFields) {
	if fields.Amount != nil {
		fields.Amount = floatPtr(math.Round(*fields.Amount*100) / 100)
	}
}
