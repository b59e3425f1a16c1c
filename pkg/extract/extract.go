// Package extract turns PDF pages into the span and word JSON documents
// consumed by the indexing pipeline.
package extract

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pyhub-apps/pdfextract-golang/pkg/extractors"
	"github.com/pyhub-apps/pdfextract-golang/pkg/logging"
	"github.com/pyhub-apps/pdfextract-golang/pkg/normalize"
	"github.com/pyhub-apps/pdfextract-golang/pkg/pdf"
)

// Extractor converts opened documents into span or word results
type Extractor struct {
	organizer  *extractors.TextOrganizer
	logger     logging.Logger
	pages      []int
	selection  string
	dimensions []pdf.Dimensions
	backend    string
	inspect    bool
	relaxed    bool
}

// Option configures an Extractor
type Option func(*Extractor)

// WithOrganizer sets the layout grouping used for spans and words
func WithOrganizer(organizer *extractors.TextOrganizer) Option {
	return func(e *Extractor) {
		e.organizer = organizer
	}
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithPages restricts extraction to the given 1-based page numbers
func WithPages(pages ...int) Option {
	return func(e *Extractor) {
		e.pages = pages
	}
}

// WithPageSelection restricts extraction to a pdfcpu page selection such
// as "1,3" or "2-4". Pages past the end of the document are dropped.
func WithPageSelection(expr string) Option {
	return func(e *Extractor) {
		e.selection = expr
	}
}

// WithDimensions overrides page sizes in word output, indexed by page - 1
func WithDimensions(dims []pdf.Dimensions) Option {
	return func(e *Extractor) {
		e.dimensions = dims
	}
}

// WithBackend selects the backend used by the *File helpers; empty means fallback order
func WithBackend(backend string) Option {
	return func(e *Extractor) {
		e.backend = backend
	}
}

// WithInspection toggles the pdfcpu pass that supplies page dimensions
// to ExtractWordsFile
func WithInspection(enabled bool) Option {
	return func(e *Extractor) {
		e.inspect = enabled
	}
}

// WithRelaxedValidation selects relaxed (default) or strict pdfcpu validation
// for the inspection pass
func WithRelaxedValidation(relaxed bool) Option {
	return func(e *Extractor) {
		e.relaxed = relaxed
	}
}

// New creates an Extractor with default layout tolerances
func New(opts ...Option) *Extractor {
	e := &Extractor{
		organizer: extractors.NewTextOrganizer(),
		logger:    logging.Nop(),
		inspect:   true,
		relaxed:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractSpans extracts normalized spans for every selected page
func (e *Extractor) ExtractSpans(doc pdf.Document) (*SpanResult, error) {
	numbers, err := e.selectPages(doc.PageCount())
	if err != nil {
		return nil, err
	}

	result := &SpanResult{Pages: make([]SpanPage, 0, len(numbers))}
	for _, number := range numbers {
		page, glyphs, err := e.loadPage(doc, number)
		if err != nil {
			return nil, err
		}

		spans := make([]Span, 0)
		for _, span := range e.organizer.ExtractSpans(glyphs) {
			// Skip empty spans
			if strings.TrimSpace(span.Text) == "" {
				continue
			}
			spans = append(spans, Span{
				Text:           span.Text,
				NormalizedText: normalize.Normalize(span.Text),
				BBox:           spanBBox(span.BBox),
			})
		}

		result.Pages = append(result.Pages, SpanPage{
			PageNumber: number,
			Text:       e.pageText(page, glyphs),
			Spans:      spans,
		})
		e.logger.Debug("extracted spans", "page", number, "spans", len(spans))
	}

	return result, nil
}

// ExtractWords extracts words with block, line and word ordinals for every
// selected page
func (e *Extractor) ExtractWords(doc pdf.Document) (*WordResult, error) {
	numbers, err := e.selectPages(doc.PageCount())
	if err != nil {
		return nil, err
	}

	result := &WordResult{Pages: make([]WordPage, 0, len(numbers))}
	for _, number := range numbers {
		page, glyphs, err := e.loadPage(doc, number)
		if err != nil {
			return nil, err
		}

		words := make([]Word, 0)
		for _, word := range e.organizer.ExtractWords(glyphs) {
			words = append(words, Word{
				Text:           word.Text,
				NormalizedText: normalize.Normalize(word.Text),
				BBox:           wordBBox(word.BBox),
				BlockNo:        word.BlockNo,
				LineNo:         word.LineNo,
				WordNo:         word.WordNo,
			})
		}

		result.Pages = append(result.Pages, WordPage{
			PageNumber: number,
			Text:       e.pageText(page, glyphs),
			Words:      words,
			Dimensions: e.pageDimensions(page, number),
		})
		e.logger.Debug("extracted words", "page", number, "words", len(words))
	}

	return result, nil
}

// ExtractSpansFile opens path, extracts spans and closes the document
func ExtractSpansFile(path string, opts ...Option) (*SpanResult, error) {
	e := New(opts...)

	doc, err := e.open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return e.ExtractSpans(doc)
}

// ExtractWordsFile opens path, extracts words and closes the document.
// Page sizes come from a pdfcpu inspection unless disabled; a file pdfcpu
// rejects still extracts with the backend's own page sizes.
func ExtractWordsFile(path string, opts ...Option) (*WordResult, error) {
	e := New(opts...)

	if e.inspect && e.dimensions == nil {
		inspection, err := pdf.Inspect(path, e.relaxed)
		switch {
		case err == nil:
			e.dimensions = inspection.Dimensions
		case errors.Is(err, pdf.ErrFileNotFound):
			return nil, err
		default:
			e.logger.Warn("pdfcpu inspection failed, using backend page sizes", "path", path, "error", err)
		}
	}

	doc, err := e.open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return e.ExtractWords(doc)
}

func (e *Extractor) open(path string) (pdf.Document, error) {
	doc, err := pdf.OpenWithBackend(path, e.backend)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("opened document", "path", path, "backend", doc.Backend(), "pages", doc.PageCount())
	return doc, nil
}

// selectPages returns the ascending, de-duplicated page numbers to extract
func (e *Extractor) selectPages(pageCount int) ([]int, error) {
	if e.selection != "" && len(e.pages) == 0 {
		return pdf.SelectPages(e.selection, pageCount)
	}

	if len(e.pages) == 0 {
		numbers := make([]int, pageCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers, nil
	}

	seen := make(map[int]bool, len(e.pages))
	numbers := make([]int, 0, len(e.pages))
	for _, number := range e.pages {
		if number < 1 || number > pageCount {
			return nil, fmt.Errorf("%w: page %d not in [1, %d]", pdf.ErrPageOutOfRange, number, pageCount)
		}
		if !seen[number] {
			seen[number] = true
			numbers = append(numbers, number)
		}
	}
	sort.Ints(numbers)

	return numbers, nil
}

func (e *Extractor) loadPage(doc pdf.Document, number int) (pdf.Page, []pdf.Glyph, error) {
	page, err := doc.GetPage(number - 1)
	if err != nil {
		return nil, nil, err
	}

	glyphs, err := page.GetGlyphs()
	if err != nil {
		return nil, nil, fmt.Errorf("page %d: %w", number, err)
	}

	return page, glyphs, nil
}

// pageText prefers the backend's own text and falls back to the layout rendering
func (e *Extractor) pageText(page pdf.Page, glyphs []pdf.Glyph) string {
	text, err := page.ExtractText()
	if err != nil {
		e.logger.Warn("backend text extraction failed, using layout text",
			"page", page.GetPageNumber(), "error", err)
		return e.organizer.OrganizeText(glyphs)
	}
	return text
}

func (e *Extractor) pageDimensions(page pdf.Page, number int) Dimensions {
	if number-1 < len(e.dimensions) {
		dim := e.dimensions[number-1]
		return Dimensions{Width: dim.Width, Height: dim.Height}
	}
	return Dimensions{Width: page.GetWidth(), Height: page.GetHeight()}
}
