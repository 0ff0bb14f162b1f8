// Package docextract implements best-effort structured-field extraction
// over text recovered from UGC agency documents.
//
// textextract.go implements the text-extraction collaborator consumed by
// the Processor façade. Decoding PDF bytes is the only I/O-shaped step
// in the pipeline, so it sits behind the TextExtractor interface and
// reports failure as an explicit error value rather than driving control
// flow through panics. The default implementation uses the
// ledongthuc/pdf library with mimetype sniffing up front.
package docextract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// ErrEmptyInput is returned when no document bytes are provided.
var ErrEmptyInput = errors.New("empty document bytes provided")

// ErrNotPDF is returned when the supplied bytes are not a PDF.
var ErrNotPDF = errors.New("document bytes are not a PDF")

// ErrNoContent is returned when a PDF contains no extractable text.
var ErrNoContent = errors.New("no text content found in PDF")

// TextExtractor recovers plain text from raw document bytes.
// Implementations return an error for malformed or unsupported input;
// the Processor façade converts that into an empty draft record.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// TextExtractorConfig holds configuration for PDF text extraction.
type TextExtractorConfig struct {
	// SkipEmptyPages when true excludes pages with no text from results
	SkipEmptyPages bool

	// PageSeparator is the string inserted between page texts.
	// Defaults to "\n\n" if empty
	PageSeparator string

	// ContinueOnError when true continues extraction even if some pages fail
	ContinueOnError bool

	// MaxPages limits extraction to the first N pages (0 for all pages)
	MaxPages int
}

// DefaultTextExtractorConfig returns sensible default configuration.
func DefaultTextExtractorConfig() TextExtractorConfig {
	return TextExtractorConfig{
		SkipEmptyPages:  true,
		PageSeparator:   "\n\n",
		ContinueOnError: true,
		MaxPages:        0,
	}
}

// PDFTextExtractor extracts text from PDF bytes. It is stateless and
// safe for concurrent use.
type PDFTextExtractor struct {
	config TextExtractorConfig
}

// NewPDFTextExtractor creates a PDFTextExtractor with the given
// configuration.
func NewPDFTextExtractor(config TextExtractorConfig) *PDFTextExtractor {
	if config.PageSeparator == "" {
		config.PageSeparator = "\n\n"
	}
	return &PDFTextExtractor{config: config}
}

// NewDefaultPDFTextExtractor creates a PDFTextExtractor with default
// configuration.
func NewDefaultPDFTextExtractor() *PDFTextExtractor {
	return NewPDFTextExtractor(DefaultTextExtractorConfig())
}

// ExtractText decodes the supplied PDF bytes into plain text.
//
// Non-PDF bytes fail fast with ErrNotPDF before the PDF parser sees
// them. A structurally valid PDF with no recoverable text returns
// ErrNoContent.
func (e *PDFTextExtractor) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyInput
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		return "", ErrNotPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPages := reader.NumPage()
	pagesToProcess := totalPages
	if e.config.MaxPages > 0 && e.config.MaxPages < totalPages {
		pagesToProcess = e.config.MaxPages
	}

	var textBuilder strings.Builder

	// Pages are 1-indexed in ledongthuc/pdf.
	for pageIndex := 1; pageIndex <= pagesToProcess; pageIndex++ {
		pageText, err := e.extractPage(reader, pageIndex)
		if err != nil {
			if !e.config.ContinueOnError {
				return "", fmt.Errorf("page %d: %w", pageIndex, err)
			}
			continue
		}
		if pageText == "" && e.config.SkipEmptyPages {
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString(e.config.PageSeparator)
		}
		textBuilder.WriteString(pageText)
	}

	text := textBuilder.String()
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}

// extractPage extracts text from a single page.
func (e *PDFTextExtractor) extractPage(reader *pdf.Reader, pageIndex int) (string, error) {
	p := reader.Page(pageIndex)
	if p.V.IsNull() {
		// Empty page, not an error
		return "", nil
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
