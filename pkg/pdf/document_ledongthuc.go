package pdf

import (
	"fmt"
	"io"
	"os"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucDocument implements the Document interface using ledongthuc/pdf library
type LedongthucDocument struct {
	file     io.Closer
	reader   *lpdf.Reader
	filepath string
	pages    []Page
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library.
// It reports real glyph advances, which makes it the most accurate backend.
func OpenWithLedongthuc(filepath string) (doc Document, err error) {
	var f *os.File
	defer closeOnError(&err, &f)
	defer recoverError(&err, "failed to open PDF with ledongthuc")

	var r *lpdf.Reader
	f, r, err = lpdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	d := &LedongthucDocument{
		file:     f,
		reader:   r,
		filepath: filepath,
	}

	// Initialize pages
	if err := d.initializePages(); err != nil {
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return d, nil
}

// initializePages reads the page tree; content streams are parsed lazily
func (d *LedongthucDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := newLedongthucPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// Backend returns the backend name
func (d *LedongthucDocument) Backend() string {
	return BackendLedongthuc
}

// GetPages returns all pages in the document
func (d *LedongthucDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *LedongthucDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("%w: index %d not in [0, %d)", ErrPageOutOfRange, index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// LedongthucPage implements the Page interface using ledongthuc/pdf
type LedongthucPage struct {
	pageNumber int
	page       lpdf.Page
	box        mediaBox
	rotation   int
	glyphs     []Glyph
	parsed     bool
}

func newLedongthucPage(reader *lpdf.Reader, pageNumber int) (*LedongthucPage, error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("%w: page %d", ErrPageOutOfRange, pageNumber)
	}

	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d has no page object", pageNumber)
	}

	p := &LedongthucPage{
		pageNumber: pageNumber,
		page:       page,
		box:        defaultBox(),
	}

	// MediaBox and Rotate may be inherited from the parent Pages node
	mb := ledongthucInherited(page.V, "MediaBox")
	if mb.Kind() == lpdf.Array && mb.Len() == 4 {
		if box, ok := boxFromCoords(
			mb.Index(0).Float64(), mb.Index(1).Float64(),
			mb.Index(2).Float64(), mb.Index(3).Float64(),
		); ok {
			p.box = box
		}
	}

	if rotate := ledongthucInherited(page.V, "Rotate"); rotate.Kind() == lpdf.Integer {
		p.rotation = normalizeRotation(int(rotate.Int64()))
	}

	return p, nil
}

// ledongthucInherited looks a key up on the page and then its ancestors
func ledongthucInherited(v lpdf.Value, key string) lpdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if value := v.Key(key); !value.IsNull() {
			return value
		}
		v = v.Key("Parent")
	}
	return lpdf.Value{}
}

// GetPageNumber returns the page number (1-based)
func (p *LedongthucPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width as displayed, after rotation
func (p *LedongthucPage) GetWidth() float64 {
	width, _ := p.box.displaySize(p.rotation)
	return width
}

// GetHeight returns the page height as displayed, after rotation
func (p *LedongthucPage) GetHeight() float64 {
	_, height := p.box.displaySize(p.rotation)
	return height
}

// GetRotation returns the page rotation in degrees
func (p *LedongthucPage) GetRotation() int {
	return p.rotation
}

// GetBBox returns the page bounding box
func (p *LedongthucPage) GetBBox() BoundingBox {
	width, height := p.box.displaySize(p.rotation)
	return BoundingBox{X0: 0, Y0: 0, X1: width, Y1: height}
}

// GetGlyphs returns the glyphs shown on the page
func (p *LedongthucPage) GetGlyphs() ([]Glyph, error) {
	if p.parsed {
		return p.glyphs, nil
	}

	items, err := p.textItems()
	if err != nil {
		return nil, err
	}

	p.glyphs = glyphsFromItems(items, p.box, p.rotation)
	p.parsed = true
	return p.glyphs, nil
}

// textItems interprets the content stream into text runs
func (p *LedongthucPage) textItems() (items []textItem, err error) {
	defer recoverError(&err, fmt.Sprintf("failed to parse content of page %d", p.pageNumber))

	content := p.page.Content()
	items = make([]textItem, 0, len(content.Text))
	for _, text := range content.Text {
		items = append(items, textItem{
			Font:     text.Font,
			FontSize: text.FontSize,
			X:        text.X,
			Y:        text.Y,
			W:        text.W,
			S:        text.S,
		})
	}
	return items, nil
}

// ExtractText extracts plain text from the page using the library's own layout
func (p *LedongthucPage) ExtractText() (text string, err error) {
	defer recoverError(&err, fmt.Sprintf("failed to extract text of page %d", p.pageNumber))

	fonts := make(map[string]*lpdf.Font)
	for _, name := range p.page.Fonts() {
		font := p.page.Font(name)
		fonts[name] = &font
	}

	text, err = p.page.GetPlainText(fonts)
	if err != nil {
		return "", fmt.Errorf("failed to extract text of page %d: %w", p.pageNumber, err)
	}
	return text, nil
}
