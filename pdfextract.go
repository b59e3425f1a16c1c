// Package pdfextract extracts text spans and words with their positions
// from PDF documents for search indexing.
package pdfextract

import (
	"github.com/pyhub-apps/pdfextract-golang/pkg/extract"
	"github.com/pyhub-apps/pdfextract-golang/pkg/extractors"
	"github.com/pyhub-apps/pdfextract-golang/pkg/normalize"
	"github.com/pyhub-apps/pdfextract-golang/pkg/pdf"
)

// Re-export types from the pdf and extract packages for the public API
type (
	Document      = pdf.Document
	Page          = pdf.Page
	Glyph         = pdf.Glyph
	BoundingBox   = pdf.BoundingBox
	Inspection    = pdf.Inspection
	TextOrganizer = extractors.TextOrganizer
	Option        = extract.Option
	SpanResult    = extract.SpanResult
	WordResult    = extract.WordResult
)

// Re-export errors
var (
	ErrFileNotFound   = pdf.ErrFileNotFound
	ErrInvalidPDF     = pdf.ErrInvalidPDF
	ErrPageOutOfRange = pdf.ErrPageOutOfRange
	ErrUnknownBackend = pdf.ErrUnknownBackend
)

// Re-export option functions
var (
	WithBackend           = extract.WithBackend
	WithPages             = extract.WithPages
	WithPageSelection     = extract.WithPageSelection
	WithOrganizer         = extract.WithOrganizer
	WithLogger            = extract.WithLogger
	WithRelaxedValidation = extract.WithRelaxedValidation
	NewTextOrganizer      = extractors.NewTextOrganizer
	WithXTolerance        = extractors.WithXTolerance
	WithYTolerance        = extractors.WithYTolerance
)

// Open opens a PDF file with the first backend that accepts it:
// ledongthuc/pdf, then dslipak/pdf, then MuPDF.
func Open(filepath string) (Document, error) {
	return pdf.Open(filepath)
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
// This provides the most accurate glyph positions
func OpenWithLedongthuc(filepath string) (Document, error) {
	return pdf.OpenWithLedongthuc(filepath)
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (Document, error) {
	return pdf.OpenWithDslipak(filepath)
}

// OpenWithMuPDF opens a PDF file using MuPDF through go-fitz
func OpenWithMuPDF(filepath string) (Document, error) {
	return pdf.OpenWithMuPDF(filepath)
}

// Inspect validates a PDF with pdfcpu and reports its page sizes
func Inspect(filepath string) (*Inspection, error) {
	return pdf.Inspect(filepath, true)
}

// ExtractSpans extracts normalized text spans from every page of a PDF file
func ExtractSpans(filepath string, opts ...Option) (*SpanResult, error) {
	return extract.ExtractSpansFile(filepath, opts...)
}

// ExtractWords extracts words with their block, line and word numbers
func ExtractWords(filepath string, opts ...Option) (*WordResult, error) {
	return extract.ExtractWordsFile(filepath, opts...)
}

// Normalize lowercases text, drops everything except ASCII letters, digits
// and whitespace, and collapses whitespace into single spaces.
func Normalize(text string) string {
	return normalize.Normalize(text)
}
