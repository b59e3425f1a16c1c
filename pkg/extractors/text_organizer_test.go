package extractors

import (
	"testing"

	"github.com/pyhub-apps/pdfextract-golang/pkg/pdf"
)

// layout places text as fixed-advance glyphs starting at (x, top);
// spaces advance without emitting a glyph, like the backends do.
func layout(text string, x, top, size float64) []pdf.Glyph {
	var glyphs []pdf.Glyph
	advance := size * 0.5
	for _, ch := range text {
		if ch == ' ' {
			x += advance
			continue
		}
		glyphs = append(glyphs, pdf.Glyph{
			Text:     string(ch),
			Font:     "Helvetica",
			FontSize: size,
			X0:       x,
			Y0:       top,
			X1:       x + advance,
			Y1:       top + size,
		})
		x += advance
	}
	return glyphs
}

func wordTexts(words []Word) []string {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return texts
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExtractWords(t *testing.T) {
	glyphs := layout("Hello, World!", 50, 38, 16)
	words := NewTextOrganizer().ExtractWords(glyphs)

	expected := []string{"Hello,", "World!"}
	if got := wordTexts(words); !equalStrings(got, expected) {
		t.Fatalf("Expected words %v, got %v", expected, got)
	}

	first := words[0]
	if first.BBox.X0 != 50 || first.BBox.Y0 != 38 || first.BBox.Y1 != 54 {
		t.Errorf("Unexpected bbox for first word: %+v", first.BBox)
	}
	if first.BBox.X1 != 50+6*8 {
		t.Errorf("Expected first word to end at %.1f, got %.1f", 50.0+6*8, first.BBox.X1)
	}
	if words[1].WordNo != 1 || words[1].LineNo != 0 || words[1].BlockNo != 0 {
		t.Errorf("Unexpected numbering for second word: %+v", words[1])
	}
}

func TestExtractWordsUnsortedInput(t *testing.T) {
	glyphs := layout("abc def", 10, 10, 10)
	// Reverse the content order; output must still read left to right.
	for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
		glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
	}

	got := wordTexts(NewTextOrganizer().ExtractWords(glyphs))
	if !equalStrings(got, []string{"abc", "def"}) {
		t.Errorf("Expected [abc def], got %v", got)
	}
}

func TestBlockAndLineNumbering(t *testing.T) {
	var glyphs []pdf.Glyph
	glyphs = append(glyphs, layout("first line", 50, 100, 10)...)
	glyphs = append(glyphs, layout("second line", 50, 112, 10)...) // tight spacing, same block
	glyphs = append(glyphs, layout("new block", 50, 160, 10)...)   // large gap

	lines := NewTextOrganizer().ExtractLines(glyphs)
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}

	tests := []struct {
		text    string
		blockNo int
		lineNo  int
	}{
		{"first line", 0, 0},
		{"second line", 0, 1},
		{"new block", 1, 0},
	}
	for i, tt := range tests {
		if lines[i].Text != tt.text {
			t.Errorf("Line %d: expected text %q, got %q", i, tt.text, lines[i].Text)
		}
		if lines[i].BlockNo != tt.blockNo || lines[i].LineNo != tt.lineNo {
			t.Errorf("Line %d: expected block %d line %d, got block %d line %d",
				i, tt.blockNo, tt.lineNo, lines[i].BlockNo, lines[i].LineNo)
		}
		for j, w := range lines[i].Words {
			if w.BlockNo != tt.blockNo || w.LineNo != tt.lineNo || w.WordNo != j {
				t.Errorf("Line %d word %d: unexpected numbering %+v", i, j, w)
			}
		}
	}
}

func TestExtractSpans(t *testing.T) {
	var glyphs []pdf.Glyph
	glyphs = append(glyphs, layout("Title", 50, 20, 16)...)
	body := layout("Body text", 50, 60, 12)
	glyphs = append(glyphs, body...)

	// A bold run on the body line splits it into its own span.
	bold := layout("bold", body[len(body)-1].X1+6, 60, 12)
	for i := range bold {
		bold[i].Font = "Helvetica-Bold"
	}
	glyphs = append(glyphs, bold...)

	spans := NewTextOrganizer().ExtractSpans(glyphs)
	expected := []string{"Title", "Body text", "bold"}
	if len(spans) != len(expected) {
		t.Fatalf("Expected %d spans, got %d: %+v", len(expected), len(spans), spans)
	}
	for i, text := range expected {
		if spans[i].Text != text {
			t.Errorf("Span %d: expected %q, got %q", i, text, spans[i].Text)
		}
	}

	if spans[0].FontSize != 16 || spans[2].Font != "Helvetica-Bold" {
		t.Errorf("Unexpected span fonts: %+v / %+v", spans[0], spans[2])
	}
	if spans[1].BBox.Width() <= 0 || spans[1].BBox.Height() != 12 {
		t.Errorf("Unexpected span bbox: %+v", spans[1].BBox)
	}
}

func TestExtractSpansSplitsDistantRuns(t *testing.T) {
	var glyphs []pdf.Glyph
	glyphs = append(glyphs, layout("left", 50, 100, 10)...)
	glyphs = append(glyphs, layout("right", 400, 100, 10)...)

	spans := NewTextOrganizer().ExtractSpans(glyphs)
	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d", len(spans))
	}
}

func TestMixedSizesShareLine(t *testing.T) {
	// Same baseline at y=100: tops differ by the size difference.
	var glyphs []pdf.Glyph
	glyphs = append(glyphs, layout("Big", 50, 100-16*0.8, 16)...)
	glyphs = append(glyphs, layout("small", 90, 100-10*0.8, 10)...)

	lines := NewTextOrganizer().ExtractLines(glyphs)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Big small" {
		t.Errorf("Expected %q, got %q", "Big small", lines[0].Text)
	}
}

func TestOrganizeText(t *testing.T) {
	var glyphs []pdf.Glyph
	glyphs = append(glyphs, layout("Hello, World!", 50, 38, 16)...)
	glyphs = append(glyphs, layout("Page 1 of 2", 50, 740, 10)...)

	got := NewTextOrganizer().OrganizeText(glyphs)
	expected := "Hello, World!\nPage 1 of 2"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestOptions(t *testing.T) {
	to := NewTextOrganizer(WithXTolerance(1), WithYTolerance(2), WithBlockGap(4), WithSpaceRatio(0.5))
	if to.xTolerance != 1 || to.yTolerance != 2 || to.blockGap != 4 || to.spaceRatio != 0.5 {
		t.Errorf("Options not applied: %+v", to)
	}

	to.SetTolerances(5, 6)
	if to.xTolerance != 5 || to.yTolerance != 6 {
		t.Errorf("SetTolerances not applied: %+v", to)
	}
}

func TestEmptyInput(t *testing.T) {
	to := NewTextOrganizer()
	if lines := to.ExtractLines(nil); lines != nil {
		t.Errorf("Expected no lines, got %v", lines)
	}
	if words := to.ExtractWords(nil); len(words) != 0 {
		t.Errorf("Expected no words, got %v", words)
	}
	if spans := to.ExtractSpans(nil); len(spans) != 0 {
		t.Errorf("Expected no spans, got %v", spans)
	}
	if text := to.OrganizeText(nil); text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
}
