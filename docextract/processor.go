// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// processor.go implements the Processor organism that orchestrates the
// full pipeline. It composes the following molecules:
//   - textextract.go: TextExtractor for PDF text recovery
//   - invoice.go / contract.go: per-type field extractors
//   - postprocess.go: cross-field sanity correction
//
// The façade's contract: apart from the upfront document-type check,
// nothing escapes. A corrupt PDF, a failed pattern, or an unexpected
// panic all degrade to an all-null draft record for the requested type;
// silently blocking the upload flow would be worse than handing the user
// an empty form to fill in.
package docextract

import (
	"errors"

	"go.uber.org/zap"

	"agency_backend/logging"
)

// ErrInvalidDocumentType is returned when the document type is neither
// Invoice nor Contract. This is the only error Process ever returns.
var ErrInvalidDocumentType = errors.New(`invalid document type: must be "Invoice" or "Contract"`)

// textPreviewLen bounds how much document text is logged at debug level.
const textPreviewLen = 500

// ProcessorConfig holds configuration for the document processor.
type ProcessorConfig struct {
	// TextExtractorConfig configures PDF text recovery
	TextExtractorConfig TextExtractorConfig

	// PostProcessorConfig configures the finalization pass
	PostProcessorConfig PostProcessorConfig

	// Templates is the known-template table; nil selects the built-in
	// table
	Templates *TemplateTable
}

// DefaultProcessorConfig returns sensible default configuration.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		TextExtractorConfig: DefaultTextExtractorConfig(),
		PostProcessorConfig: DefaultPostProcessorConfig(),
		Templates:           DefaultTemplateTable(),
	}
}

// Processor orchestrates text extraction, field extraction and
// post-processing for a single document. It holds no per-call state and
// is safe for concurrent use.
type Processor struct {
	config    ProcessorConfig
	extractor TextExtractor
	invoices  *InvoiceExtractor
	contracts *ContractExtractor
	post      *PostProcessor
	logger    *zap.Logger
}

// NewProcessor creates a Processor with the given configuration.
//
// Example:
//
//	processor := NewProcessor(DefaultProcessorConfig())
//	result, err := processor.Process(pdfBytes, DocumentTypeInvoice)
func NewProcessor(config ProcessorConfig) *Processor {
	if config.Templates == nil {
		config.Templates = DefaultTemplateTable()
	}
	return &Processor{
		config:    config,
		extractor: NewPDFTextExtractor(config.TextExtractorConfig),
		invoices:  NewInvoiceExtractor(config.Templates),
		contracts: NewContractExtractor(config.Templates),
		post:      NewPostProcessor(config.PostProcessorConfig, config.Templates),
		logger:    zap.NewNop(),
	}
}

// NewProcessorWithLogger creates a Processor that logs extraction
// diagnostics through the given logger.
func NewProcessorWithLogger(config ProcessorConfig, logger *zap.Logger) *Processor {
	p := NewProcessor(config)
	if logger != nil {
		p.logger = logger
	}
	return p
}

// SetTextExtractor replaces the text-extraction collaborator. Useful for
// supplying pre-decoded text sources or test doubles.
func (p *Processor) SetTextExtractor(extractor TextExtractor) {
	if extractor != nil {
		p.extractor = extractor
	}
}

// Process extracts structured data from raw document bytes.
//
// The document type is validated before any extraction work; an unknown
// type returns ErrInvalidDocumentType. Every other failure mode is
// internal: the returned Result always carries a record, all-null in the
// degraded case.
func (p *Processor) Process(data []byte, docType DocumentType) (*Result, error) {
	if !docType.Valid() {
		return nil, ErrInvalidDocumentType
	}

	switch docType {
	case DocumentTypeInvoice:
		return &Result{Type: docType, Invoice: p.ProcessInvoice(data)}, nil
	default:
		return &Result{Type: docType, Contract: p.ProcessContract(data)}, nil
	}
}

// ProcessInvoice extracts invoice fields from raw document bytes. It
// never fails: unreadable input yields an all-null record.
func (p *Processor) ProcessInvoice(data []byte) (record *InvoiceData) {
	record = &InvoiceData{}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("invoice extraction panicked, returning empty record",
				zap.Any("panic", r))
			record = &InvoiceData{}
		}
	}()

	text, err := p.extractor.ExtractText(data)
	if err != nil {
		p.logger.Warn("text extraction failed, returning empty invoice record",
			zap.Error(err))
		return record
	}

	return p.ExtractInvoiceText(text)
}

// ProcessContract extracts contract fields from raw document bytes. It
// never fails: unreadable input yields an all-null record.
func (p *Processor) ProcessContract(data []byte) (record *ContractData) {
	record = &ContractData{}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("contract extraction panicked, returning empty record",
				zap.Any("panic", r))
			record = &ContractData{}
		}
	}()

	text, err := p.extractor.ExtractText(data)
	if err != nil {
		p.logger.Warn("text extraction failed, returning empty contract record",
			zap.Error(err))
		return record
	}

	return p.ExtractContractText(text)
}

// ExtractInvoiceText runs field extraction and finalization over
// already-recovered text, skipping the PDF decoding stage.
func (p *Processor) ExtractInvoiceText(text string) *InvoiceData {
	p.logger.Debug("extracting invoice fields",
		zap.String("text_preview", logging.Preview(text, textPreviewLen)))

	data := p.invoices.Extract(text)
	return p.post.FinalizeInvoice(data, text)
}

// ExtractContractText runs field extraction and finalization over
// already-recovered text, skipping the PDF decoding stage.
func (p *Processor) ExtractContractText(text string) *ContractData {
	p.logger.Debug("extracting contract fields",
		zap.String("text_preview", logging.Preview(text, textPreviewLen)))

	data := p.contracts.Extract(text)
	return p.post.FinalizeContract(data, text)
}

// ProcessDocument is a convenience function for processing a document
// with default configuration.
//
// Example:
//
//	result, err := ProcessDocument(pdfBytes, DocumentTypeContract)
func ProcessDocument(data []byte, docType DocumentType) (*Result, error) {
	return NewProcessor(DefaultProcessorConfig()).Process(data, docType)
}
