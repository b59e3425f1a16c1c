package pdf

import (
	"fmt"
	"os"

	gopdf "github.com/dslipak/pdf"
)

// DsliPakDocument implements the Document interface using dslipak/pdf library
type DsliPakDocument struct {
	file     *os.File
	reader   *gopdf.Reader
	filepath string
	pages    []Page
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (doc Document, err error) {
	var f *os.File
	defer closeOnError(&err, &f)
	defer recoverError(&err, "failed to open PDF with dslipak")

	f, err = os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	r, err := gopdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	d := &DsliPakDocument{
		file:     f,
		reader:   r,
		filepath: filepath,
	}

	if err := d.initializePages(); err != nil {
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return d, nil
}

// initializePages initializes all pages in the document
func (d *DsliPakDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := newDsliPakPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// Backend returns the backend name
func (d *DsliPakDocument) Backend() string {
	return BackendDslipak
}

// GetPages returns all pages in the document
func (d *DsliPakDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *DsliPakDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("%w: index %d not in [0, %d)", ErrPageOutOfRange, index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *DsliPakDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *DsliPakDocument) Close() error {
	d.reader = nil
	d.pages = nil
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// DsliPakPage implements the Page interface using dslipak/pdf
type DsliPakPage struct {
	pageNumber int
	page       gopdf.Page
	box        mediaBox
	rotation   int
	items      []textItem
	glyphs     []Glyph
	parsed     bool
}

func newDsliPakPage(reader *gopdf.Reader, pageNumber int) (*DsliPakPage, error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("%w: page %d", ErrPageOutOfRange, pageNumber)
	}

	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d has no page object", pageNumber)
	}

	p := &DsliPakPage{
		pageNumber: pageNumber,
		page:       page,
		box:        defaultBox(),
	}

	mb := dslipakInherited(page.V, "MediaBox")
	if mb.Kind() == gopdf.Array && mb.Len() == 4 {
		if box, ok := boxFromCoords(
			mb.Index(0).Float64(), mb.Index(1).Float64(),
			mb.Index(2).Float64(), mb.Index(3).Float64(),
		); ok {
			p.box = box
		}
	}

	if rotate := dslipakInherited(page.V, "Rotate"); rotate.Kind() == gopdf.Integer {
		p.rotation = normalizeRotation(int(rotate.Int64()))
	}

	return p, nil
}

// dslipakInherited looks a key up on the page and then its ancestors
func dslipakInherited(v gopdf.Value, key string) gopdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if value := v.Key(key); !value.IsNull() {
			return value
		}
		v = v.Key("Parent")
	}
	return gopdf.Value{}
}

// GetPageNumber returns the page number (1-based)
func (p *DsliPakPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width as displayed, after rotation
func (p *DsliPakPage) GetWidth() float64 {
	width, _ := p.box.displaySize(p.rotation)
	return width
}

// GetHeight returns the page height as displayed, after rotation
func (p *DsliPakPage) GetHeight() float64 {
	_, height := p.box.displaySize(p.rotation)
	return height
}

// GetRotation returns the page rotation in degrees
func (p *DsliPakPage) GetRotation() int {
	return p.rotation
}

// GetBBox returns the page bounding box
func (p *DsliPakPage) GetBBox() BoundingBox {
	width, height := p.box.displaySize(p.rotation)
	return BoundingBox{X0: 0, Y0: 0, X1: width, Y1: height}
}

// GetGlyphs returns the glyphs shown on the page
func (p *DsliPakPage) GetGlyphs() ([]Glyph, error) {
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.glyphs, nil
}

// ExtractText joins the page's text runs in content stream order.
// dslipak/pdf has no plain text renderer of its own.
func (p *DsliPakPage) ExtractText() (string, error) {
	if err := p.parse(); err != nil {
		return "", err
	}
	return joinStreamText(p.items), nil
}

// parse interprets the content stream once
func (p *DsliPakPage) parse() (err error) {
	if p.parsed {
		return nil
	}
	defer recoverError(&err, fmt.Sprintf("failed to parse content of page %d", p.pageNumber))

	content := p.page.Content()
	items := make([]textItem, 0, len(content.Text))
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

	p.items = items
	p.glyphs = glyphsFromItems(items, p.box, p.rotation)
	p.parsed = true
	return nil
}
