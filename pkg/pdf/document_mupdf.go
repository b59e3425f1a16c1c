package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/gen2brain/go-fitz"
)

// advanceRatio approximates a glyph's advance as a share of the font size.
// MuPDF's HTML output positions lines but carries no glyph widths.
const (
	advanceRatio      = 0.5
	spaceAdvanceRatio = 0.25
)

// MuPDFDocument implements the Document interface using MuPDF through go-fitz
type MuPDFDocument struct {
	doc      *fitz.Document
	filepath string
	pages    []Page
}

// OpenWithMuPDF opens a PDF file using go-fitz (MuPDF)
func OpenWithMuPDF(filepath string) (Document, error) {
	doc, err := fitz.New(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with mupdf: %w", err)
	}

	d := &MuPDFDocument{
		doc:      doc,
		filepath: filepath,
	}

	if err := d.initializePages(); err != nil {
		doc.Close()
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return d, nil
}

// initializePages reads page bounds for every page.
// go-fitz reports bounds as an image.Rectangle, so sizes are whole points
// and may be a point short of the MediaBox (A4 reads as 595x841).
// Callers needing exact sizes take them from pdfcpu.
func (d *MuPDFDocument) initializePages() error {
	pageCount := d.doc.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 0; i < pageCount; i++ {
		bound, err := d.doc.Bound(i)
		if err != nil {
			return fmt.Errorf("failed to read bounds of page %d: %w", i+1, err)
		}

		d.pages[i] = &MuPDFPage{
			doc:        d.doc,
			index:      i,
			pageNumber: i + 1,
			width:      float64(bound.Dx()),
			height:     float64(bound.Dy()),
		}
	}

	return nil
}

// Backend returns the backend name
func (d *MuPDFDocument) Backend() string {
	return BackendMuPDF
}

// GetPages returns all pages in the document
func (d *MuPDFDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *MuPDFDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("%w: index %d not in [0, %d)", ErrPageOutOfRange, index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *MuPDFDocument) PageCount() int {
	return len(d.pages)
}

// Close releases the MuPDF context
func (d *MuPDFDocument) Close() error {
	if d.doc != nil {
		err := d.doc.Close()
		d.doc = nil
		return err
	}
	return nil
}

// MuPDFPage implements the Page interface using go-fitz.
// Glyph boxes are approximated from MuPDF's structured-text HTML.
type MuPDFPage struct {
	doc        *fitz.Document
	index      int
	pageNumber int
	width      float64
	height     float64
	glyphs     []Glyph
	parsed     bool
}

// GetPageNumber returns the page number (1-based)
func (p *MuPDFPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *MuPDFPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *MuPDFPage) GetHeight() float64 {
	return p.height
}

// GetRotation returns 0; MuPDF reports bounds with rotation already applied
func (p *MuPDFPage) GetRotation() int {
	return 0
}

// GetBBox returns the page bounding box
func (p *MuPDFPage) GetBBox() BoundingBox {
	return BoundingBox{X0: 0, Y0: 0, X1: p.width, Y1: p.height}
}

// ExtractText returns MuPDF's plain text for the page
func (p *MuPDFPage) ExtractText() (string, error) {
	text, err := p.doc.Text(p.index)
	if err != nil {
		return "", fmt.Errorf("failed to extract text of page %d: %w", p.pageNumber, err)
	}
	return text, nil
}

// GetGlyphs returns approximate glyphs parsed from MuPDF's HTML output
func (p *MuPDFPage) GetGlyphs() ([]Glyph, error) {
	if p.parsed {
		return p.glyphs, nil
	}

	html, err := p.doc.HTML(p.index, false)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d as html: %w", p.pageNumber, err)
	}

	glyphs, err := parseStextHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html of page %d: %w", p.pageNumber, err)
	}

	p.glyphs = glyphs
	p.parsed = true
	return p.glyphs, nil
}

// parseStextHTML reads MuPDF structured-text HTML.
// Every <p> is one line positioned by its top/left style; every <span>
// inside it is a run with its own font-family and font-size.
func parseStextHTML(html string) ([]Glyph, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var glyphs []Glyph
	doc.Find("p").Each(func(_ int, line *goquery.Selection) {
		style, _ := line.Attr("style")
		props := parseStyle(style)
		top := points(props["top"])
		x := points(props["left"])
		lineHeight := points(props["line-height"])

		line.Find("span").Each(func(_ int, span *goquery.Selection) {
			spanStyle, _ := span.Attr("style")
			spanProps := parseStyle(spanStyle)

			fontSize := points(spanProps["font-size"])
			if fontSize == 0 {
				fontSize = lineHeight
			}
			font := fontFamily(spanProps["font-family"])

			for _, ch := range span.Text() {
				if unicode.IsSpace(ch) {
					x += fontSize * spaceAdvanceRatio
					continue
				}

				advance := fontSize * advanceRatio
				glyphs = append(glyphs, Glyph{
					Text:     string(ch),
					Font:     font,
					FontSize: fontSize,
					X0:       x,
					Y0:       top,
					X1:       x + advance,
					Y1:       top + fontSize,
				})
				x += advance
			}
		})
	})

	return glyphs, nil
}

// parseStyle splits an inline CSS declaration list into lowercased keys
func parseStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return props
}

// points parses a CSS length such as "16.0pt"; unknown values are 0
func points(value string) float64 {
	value = strings.TrimSuffix(strings.TrimSpace(value), "pt")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// fontFamily returns the first family of a CSS font-family list, unquoted
func fontFamily(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return cleanFontName(strings.Trim(strings.TrimSpace(first), `'"`))
}
