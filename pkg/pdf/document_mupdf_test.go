package pdf

import "testing"

const stextHTML = `<!DOCTYPE html>
<html><head><style>body{margin:0}</style></head><body>
<div id="page0" style="width:612.0pt;height:792.0pt">
<p style="top:37.2pt;left:50.0pt;line-height:16.0pt"><span style="font-family:'Helvetica',sans-serif;font-size:16.0pt">Hello, World!</span></p>
<p style="top:70.4pt;left:50.0pt;line-height:12.0pt"><span style="font-family:ABCDEF+Times;font-size:12.0pt">A</span><b><span style="font-family:Times-Bold;font-size:12.0pt">B</span></b></p>
</div>
</body></html>`

func TestParseStextHTML(t *testing.T) {
	glyphs, err := parseStextHTML(stextHTML)
	if err != nil {
		t.Fatalf("Failed to parse html: %v", err)
	}

	// "Hello, World!" has 12 non-space glyphs, plus A and B
	if len(glyphs) != 14 {
		t.Fatalf("Expected 14 glyphs, got %d", len(glyphs))
	}

	first := glyphs[0]
	if first.Text != "H" || first.Font != "Helvetica" || first.FontSize != 16 {
		t.Errorf("Unexpected first glyph: %+v", first)
	}
	if first.X0 != 50 || first.Y0 != 37.2 || first.X1 != 58 {
		t.Errorf("Unexpected first glyph box: %+v", first)
	}

	// The space advances the pen without emitting a glyph
	w := glyphs[6]
	if w.Text != "W" {
		t.Fatalf("Expected glyph 6 to be W, got %q", w.Text)
	}
	if gap := w.X0 - glyphs[5].X1; gap != 4 {
		t.Errorf("Expected a 4pt space gap, got %.2f", gap)
	}

	a, b := glyphs[12], glyphs[13]
	if a.Font != "Times" {
		t.Errorf("Expected subset tag to be stripped, got %q", a.Font)
	}
	if b.Font != "Times-Bold" || b.X0 != a.X1 {
		t.Errorf("Expected bold run to continue the line, got %+v after %+v", b, a)
	}
}

func TestParseStyle(t *testing.T) {
	props := parseStyle("Top: 12.5pt; left:3pt;;bogus")
	if points(props["top"]) != 12.5 || points(props["left"]) != 3 {
		t.Errorf("Unexpected style props: %v", props)
	}
	if points("auto") != 0 {
		t.Error("Expected unparsable length to be 0")
	}
	if got := fontFamily(`"Courier New", monospace`); got != "Courier New" {
		t.Errorf("Unexpected family %q", got)
	}
}
