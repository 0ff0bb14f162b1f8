package docextract

import (
	"errors"
	"testing"
)

func TestExtractTextRejectsEmptyInput(t *testing.T) {
	e := NewDefaultPDFTextExtractor()

	for _, data := range [][]byte{nil, {}} {
		if _, err := e.ExtractText(data); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("ExtractText(%v) error = %v, want ErrEmptyInput", data, err)
		}
	}
}

func TestExtractTextRejectsNonPDF(t *testing.T) {
	e := NewDefaultPDFTextExtractor()

	inputs := [][]byte{
		[]byte("hello world"),
		[]byte("{\"json\": true}"),
		{0x89, 0x50, 0x4e, 0x47}, // PNG magic
	}
	for _, data := range inputs {
		if _, err := e.ExtractText(data); !errors.Is(err, ErrNotPDF) {
			t.Errorf("ExtractText(%q) error = %v, want ErrNotPDF", data, err)
		}
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	// The PDF magic passes the sniff but the structure is garbage, so the
	// failure comes from the parser, not the type check.
	e := NewDefaultPDFTextExtractor()

	_, err := e.ExtractText([]byte("%PDF-1.4\nnot really a pdf"))
	if err == nil {
		t.Fatal("ExtractText succeeded on corrupt PDF")
	}
	if errors.Is(err, ErrNotPDF) {
		t.Errorf("ExtractText error = %v, want parser failure", err)
	}
}

func TestNewPDFTextExtractorDefaultsSeparator(t *testing.T) {
	e := NewPDFTextExtractor(TextExtractorConfig{})
	if e.config.PageSeparator != "\n\n" {
		t.Errorf("PageSeparator = %q, want %q", e.config.PageSeparator, "\n\n")
	}
}

func TestDefaultTextExtractorConfig(t *testing.T) {
	config := DefaultTextExtractorConfig()

	if !config.SkipEmptyPages {
		t.Error("SkipEmptyPages = false, want true")
	}
	if !config.ContinueOnError {
		t.Error("ContinueOnError = false, want true")
	}
	if config.PageSeparator != "\n\n" {
		t.Errorf("PageSeparator = %q, want %q", config.PageSeparator, "\n\n")
	}
	if config.MaxPages != 0 {
		t.Errorf("MaxPages = %d, want 0", config.MaxPages)
	}
}

var _ TextExtractor = (*PDFTextExtractor)(nil)
