package pdf

// Backend names accepted by OpenWithBackend
const (
	BackendLedongthuc = "ledongthuc"
	BackendDslipak    = "dslipak"
	BackendMuPDF      = "mupdf"
)

// Backends lists every backend in the order Open tries them
var Backends = []string{BackendLedongthuc, BackendDslipak, BackendMuPDF}

// BoundingBox represents a rectangular area in top-left origin page space
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Contains checks if a point is within the bounding box
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Intersects checks if two bounding boxes intersect
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 || b.Y1 < other.Y0 || b.Y0 > other.Y1)
}

// Union returns the smallest box containing both boxes
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		X0: min(b.X0, other.X0),
		Y0: min(b.Y0, other.Y0),
		X1: max(b.X1, other.X1),
		Y1: max(b.Y1, other.Y1),
	}
}

// Dimensions is the size of a page in points
type Dimensions struct {
	Width  float64
	Height float64
}

// Glyph is a single shown character with its box in displayed page space,
// top-left origin with the page rotation applied.
// Whitespace is never emitted as a glyph; word spacing shows up as the gap
// between neighbouring glyphs.
type Glyph struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
}

// Width returns the advance width of the glyph
func (g Glyph) Width() float64 {
	return g.X1 - g.X0
}

// Height returns the height of the glyph box
func (g Glyph) Height() float64 {
	return g.Y1 - g.Y0
}

// GetBBox returns the glyph's bounding box
func (g Glyph) GetBBox() BoundingBox {
	return BoundingBox{X0: g.X0, Y0: g.Y0, X1: g.X1, Y1: g.Y1}
}
