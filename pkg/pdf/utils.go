package pdf

import (
	"math"
	"strings"
	"unicode"
)

// Default page size when a page carries no usable MediaBox (US Letter)
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// ascentRatio is the share of the font size that sits above the baseline.
// Backends only report baselines, so glyph tops are estimated with it.
const ascentRatio = 0.8

// textItem is a text run as reported by the rsc.io/pdf family of readers
// (ledongthuc and dslipak): PDF user space, bottom-left origin, Y at baseline.
type textItem struct {
	Font     string
	FontSize float64
	X        float64
	Y        float64
	W        float64
	S        string
}

// mediaBox describes the origin and size of a page in PDF user space
type mediaBox struct {
	X0, Y0        float64
	Width, Height float64
}

// displaySize returns the page size as shown, with width and height
// swapped for quarter turns
func (b mediaBox) displaySize(rotation int) (float64, float64) {
	if rotation == 90 || rotation == 270 {
		return b.Height, b.Width
	}
	return b.Width, b.Height
}

// rotateBox maps a top-left origin box on the unrotated page onto the page
// as displayed after turning it clockwise by rotation degrees
func (b mediaBox) rotateBox(x0, y0, x1, y1 float64, rotation int) (float64, float64, float64, float64) {
	w, h := b.Width, b.Height
	switch rotation {
	case 90:
		return h - y1, x0, h - y0, x1
	case 180:
		return w - x1, h - y1, w - x0, h - y0
	case 270:
		return y0, w - x1, y1, w - x0
	default:
		return x0, y0, x1, y1
	}
}

// glyphsFromItems converts baseline text runs into top-left origin glyphs
// in displayed page space, applying the page rotation.
// Runs holding several runes (ligatures, multi-char decodes) are split with
// the run width shared evenly between them.
func glyphsFromItems(items []textItem, box mediaBox, rotation int) []Glyph {
	glyphs := make([]Glyph, 0, len(items))

	for _, item := range items {
		runes := []rune(item.S)
		if len(runes) == 0 {
			continue
		}

		fontSize := math.Abs(item.FontSize)
		top := box.Height - (item.Y - box.Y0 + fontSize*ascentRatio)
		charWidth := item.W / float64(len(runes))
		x := item.X - box.X0

		for _, ch := range runes {
			if unicode.IsSpace(ch) {
				x += charWidth
				continue
			}

			x0, y0, x1, y1 := box.rotateBox(x, top, x+charWidth, top+fontSize, rotation)
			glyphs = append(glyphs, Glyph{
				Text:     string(ch),
				Font:     cleanFontName(item.Font),
				FontSize: fontSize,
				X0:       x0,
				Y0:       y0,
				X1:       x1,
				Y1:       y1,
			})
			x += charWidth
		}
	}

	return glyphs
}

// cleanFontName strips the subset tag from embedded font names (ABCDEF+Helvetica)
func cleanFontName(name string) string {
	if i := strings.IndexByte(name, '+'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// joinStreamText renders text runs in content stream order.
// A baseline change starts a new line; a horizontal gap wider than
// a third of the following run's average char width becomes a space.
func joinStreamText(items []textItem) string {
	var text strings.Builder
	var lastY, lastX1 float64

	for i, item := range items {
		if item.S == "" {
			continue
		}

		if i > 0 {
			switch {
			case math.Abs(item.Y-lastY) > math.Max(math.Abs(item.FontSize)*0.5, 1):
				text.WriteString("\n")
			case item.X-lastX1 > avgCharWidth(item)*0.3:
				text.WriteString(" ")
			}
		}

		text.WriteString(item.S)
		lastY = item.Y
		lastX1 = item.X + item.W
	}

	if text.Len() > 0 {
		text.WriteString("\n")
	}

	return text.String()
}

func avgCharWidth(item textItem) float64 {
	n := len([]rune(item.S))
	if n == 0 {
		return 0
	}
	return item.W / float64(n)
}

// boxFromCoords builds a mediaBox from the four MediaBox array entries,
// accepting reversed corners.
func boxFromCoords(x0, y0, x1, y1 float64) (mediaBox, bool) {
	box := mediaBox{
		X0:     math.Min(x0, x1),
		Y0:     math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
	if box.Width == 0 || box.Height == 0 {
		return mediaBox{}, false
	}
	return box, true
}

// defaultBox is used when a page has no MediaBox
func defaultBox() mediaBox {
	return mediaBox{Width: defaultPageWidth, Height: defaultPageHeight}
}

// normalizeRotation maps any multiple of 90 onto 0, 90, 180 or 270
func normalizeRotation(degrees int) int {
	r := degrees % 360
	if r < 0 {
		r += 360
	}
	return r
}
