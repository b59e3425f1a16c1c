// Package pdftest writes small, valid PDF files for tests.
//
// Files use the standard Helvetica fonts with an explicit /Widths array so
// every backend reports real glyph advances.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Font resource names available on every page
const (
	Regular = "F1" // Helvetica
	Bold    = "F2" // Helvetica-Bold
)

// Default page size (US Letter)
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// Glyph advances of the standard Helvetica metrics for codes 32..126,
// in 1/1000 text space units
var widths = map[string][95]int{
	Regular: {
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // space to /
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, // 0 to ?
		1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, // @ to O
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, // P to _
		333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // ` to o
		556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584, // p to ~
	},
	Bold: {
		278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
		975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
		333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
		611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
	},
}

// Width returns the advance of ch in font, in 1/1000 text space units.
// Characters outside printable ASCII get the width of a space.
func Width(font string, ch rune) int {
	table, ok := widths[font]
	if !ok {
		table = widths[Regular]
	}
	if ch < 32 || ch > 126 {
		return table[0]
	}
	return table[ch-32]
}

// Text is one line of text. X is measured from the left edge and Baseline
// from the top edge, so positions read like the extracted coordinates.
type Text struct {
	X        float64
	Baseline float64
	Size     float64
	Font     string // Regular when empty
	Value    string
}

// Page is a page with its size; zero sizes mean US Letter
type Page struct {
	Width  float64
	Height float64
	Rotate int
	Texts  []Text
}

// Advance returns the width of s set in Helvetica at size
func Advance(s string, size float64) float64 {
	return AdvanceFont(Regular, s, size)
}

// AdvanceFont returns the width of s set in font at size
func AdvanceFont(font, s string, size float64) float64 {
	var units float64
	for _, ch := range s {
		units += float64(Width(font, ch))
	}
	return units / 1000 * size
}

// Build renders pages into a complete PDF file with a valid xref table.
// The default MediaBox lives on the page tree root and is inherited by
// every Letter-sized page.
func Build(pages ...Page) []byte {
	var objects []string

	// 1 catalog, 2 page tree, 3 and 4 fonts, then page/content pairs
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 %s %s] >>",
			strings.Join(kids, " "), len(pages), num(LetterWidth), num(LetterHeight)),
		fontObject("Helvetica", Regular),
		fontObject("Helvetica-Bold", Bold),
	)

	for i, page := range pages {
		width, height := pageSize(page)

		dict := fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /%s 3 0 R /%s 4 0 R >> >> /Contents %d 0 R",
			Regular, Bold, 6+2*i)
		if width != LetterWidth || height != LetterHeight {
			dict += fmt.Sprintf(" /MediaBox [0 0 %s %s]", num(width), num(height))
		}
		if page.Rotate != 0 {
			dict += fmt.Sprintf(" /Rotate %d", page.Rotate)
		}
		dict += " >>"

		content := contentStream(page, height)
		objects = append(objects,
			dict,
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// Write builds pages into dir/name and returns the file path
func Write(t testing.TB, dir, name string, pages ...Page) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		t.Fatalf("Failed to write test PDF: %v", err)
	}
	return path
}

// Sample returns the two-page document used across the tests
func Sample() []Page {
	return []Page{
		{
			Texts: []Text{
				{X: 50, Baseline: 50, Size: 16, Value: "Hello, World!"},
				{X: 50, Baseline: 80, Size: 12, Value: "This is a sample PDF document."},
				{X: 50, Baseline: 110, Size: 12, Value: "It contains multiple lines of text!"},
				{X: 50, Baseline: 750, Size: 10, Value: "Page 1 of 2"},
			},
		},
		{
			Texts: []Text{
				{X: 50, Baseline: 50, Size: 16, Font: Bold, Value: "Second Page"},
				{X: 50, Baseline: 80, Size: 12, Value: "Testing multi-page extraction."},
				{X: 50, Baseline: 110, Size: 12, Value: "Numbers: 123, 456, 789"},
				{X: 50, Baseline: 140, Size: 12, Value: "Special characters: @#$%"},
				{X: 50, Baseline: 750, Size: 10, Value: "Page 2 of 2"},
			},
		},
	}
}

// WriteSample writes Sample into dir/sample.pdf
func WriteSample(t testing.TB, dir string) string {
	t.Helper()
	return Write(t, dir, "sample.pdf", Sample()...)
}

func pageSize(page Page) (float64, float64) {
	width, height := page.Width, page.Height
	if width == 0 {
		width = LetterWidth
	}
	if height == 0 {
		height = LetterHeight
	}
	return width, height
}

func fontObject(baseFont, font string) string {
	table := widths[font]
	list := make([]string, len(table))
	for i, w := range table {
		list[i] = fmt.Sprint(w)
	}
	return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>",
		baseFont, strings.Join(list, " "))
}

func contentStream(page Page, height float64) string {
	var b strings.Builder
	for _, text := range page.Texts {
		font := text.Font
		if font == "" {
			font = Regular
		}
		fmt.Fprintf(&b, "BT /%s %s Tf 1 0 0 1 %s %s Tm (%s) Tj ET\n",
			font, num(text.Size), num(text.X), num(height-text.Baseline), escape(text.Value))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// escape quotes a PDF literal string
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}
