package pdf

// Document represents an opened PDF file.
// Implementations are not safe for concurrent use.
type Document interface {
	// Backend returns the name of the library serving this document
	Backend() string

	// PageCount returns the total number of pages
	PageCount() int

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// GetPages returns all pages in the document
	GetPages() []Page

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width
	GetWidth() float64

	// GetHeight returns the page height
	GetHeight() float64

	// GetRotation returns the page rotation in degrees
	GetRotation() int

	// GetBBox returns the page bounding box
	GetBBox() BoundingBox

	// GetGlyphs returns the shown characters of the page in content order.
	// The result is computed on first use and cached.
	GetGlyphs() ([]Glyph, error)

	// ExtractText returns the backend's own plain text rendering of the page
	ExtractText() (string, error)
}
