package extractors

import (
	"math"
	"sort"
	"strings"

	"github.com/pyhub-apps/pdfextract-golang/pkg/pdf"
)

// Default tolerances, in points unless noted
const (
	DefaultXTolerance = 3.0
	DefaultYTolerance = 3.0
	DefaultBlockGap   = 1.0 // in line heights
	DefaultSpaceRatio = 0.3 // of the following glyph's width
)

// sizeTolerance is the largest font size difference still treated as the same size
const sizeTolerance = 0.01

// TextOrganizer organizes glyphs into lines, spans and words
type TextOrganizer struct {
	xTolerance float64 // Horizontal gap that always separates words
	yTolerance float64 // Vertical tolerance for grouping glyphs into lines
	blockGap   float64 // Line gap, in line heights, that starts a new block
	spaceRatio float64 // Gap, relative to glyph width, that separates words
}

// Option configures a TextOrganizer
type Option func(*TextOrganizer)

// WithXTolerance sets the horizontal tolerance for word separation
func WithXTolerance(tolerance float64) Option {
	return func(to *TextOrganizer) {
		to.xTolerance = tolerance
	}
}

// WithYTolerance sets the vertical tolerance for line grouping
func WithYTolerance(tolerance float64) Option {
	return func(to *TextOrganizer) {
		to.yTolerance = tolerance
	}
}

// WithBlockGap sets the vertical gap, in line heights, that splits blocks
func WithBlockGap(gap float64) Option {
	return func(to *TextOrganizer) {
		to.blockGap = gap
	}
}

// WithSpaceRatio sets the gap to glyph width ratio that separates words
func WithSpaceRatio(ratio float64) Option {
	return func(to *TextOrganizer) {
		to.spaceRatio = ratio
	}
}

// NewTextOrganizer creates a new text organizer with default tolerances
func NewTextOrganizer(opts ...Option) *TextOrganizer {
	to := &TextOrganizer{
		xTolerance: DefaultXTolerance,
		yTolerance: DefaultYTolerance,
		blockGap:   DefaultBlockGap,
		spaceRatio: DefaultSpaceRatio,
	}
	for _, opt := range opts {
		opt(to)
	}
	return to
}

// SetTolerances sets the tolerances for text grouping
func (to *TextOrganizer) SetTolerances(xTol, yTol float64) {
	to.xTolerance = xTol
	to.yTolerance = yTol
}

// Word represents a word extracted from a page.
// BlockNo counts from the top of the page, LineNo restarts in every block
// and WordNo restarts on every line.
type Word struct {
	Text    string
	BBox    pdf.BoundingBox
	Glyphs  []pdf.Glyph
	BlockNo int
	LineNo  int
	WordNo  int
}

// Span represents a run of glyphs on one line sharing font and size
type Span struct {
	Text     string
	BBox     pdf.BoundingBox
	Font     string
	FontSize float64
	Glyphs   []pdf.Glyph
}

// Line represents a line of text
type Line struct {
	Text    string
	BBox    pdf.BoundingBox
	BlockNo int
	LineNo  int
	Glyphs  []pdf.Glyph
	Words   []Word
}

// OrganizeText renders glyphs as plain text, one output line per text line
func (to *TextOrganizer) OrganizeText(glyphs []pdf.Glyph) string {
	lines := to.ExtractLines(glyphs)

	var result strings.Builder
	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(line.Text)
	}

	return result.String()
}

// ExtractLines groups glyphs into lines with their words and block numbers
func (to *TextOrganizer) ExtractLines(glyphs []pdf.Glyph) []Line {
	if len(glyphs) == 0 {
		return nil
	}

	groups := to.groupIntoLines(to.sortGlyphs(glyphs))
	lines := make([]Line, 0, len(groups))

	blockNo, lineNo := 0, 0
	for i, group := range groups {
		bbox := boundsOf(group)

		if i > 0 {
			prev := lines[len(lines)-1].BBox
			if bbox.Y0-prev.Y1 > to.blockGap*prev.Height() {
				blockNo++
				lineNo = 0
			} else {
				lineNo++
			}
		}

		words := to.extractWordsFromLine(group)
		texts := make([]string, len(words))
		for j := range words {
			words[j].BlockNo = blockNo
			words[j].LineNo = lineNo
			words[j].WordNo = j
			texts[j] = words[j].Text
		}

		lines = append(lines, Line{
			Text:    strings.Join(texts, " "),
			BBox:    bbox,
			BlockNo: blockNo,
			LineNo:  lineNo,
			Glyphs:  group,
			Words:   words,
		})
	}

	return lines
}

// ExtractWords extracts individual words in reading order
func (to *TextOrganizer) ExtractWords(glyphs []pdf.Glyph) []Word {
	var words []Word
	for _, line := range to.ExtractLines(glyphs) {
		words = append(words, line.Words...)
	}
	return words
}

// ExtractSpans splits every line into runs of one font and size.
// A horizontal jump wider than max(xTolerance, font size) also ends a span,
// so separated columns on the same baseline are not merged.
func (to *TextOrganizer) ExtractSpans(glyphs []pdf.Glyph) []Span {
	var spans []Span

	for _, line := range to.ExtractLines(glyphs) {
		var current []pdf.Glyph
		for _, g := range line.Glyphs {
			if len(current) > 0 && to.breaksSpan(current[len(current)-1], g) {
				spans = append(spans, to.createSpan(current))
				current = nil
			}
			current = append(current, g)
		}
		if len(current) > 0 {
			spans = append(spans, to.createSpan(current))
		}
	}

	return spans
}

// sortGlyphs orders glyphs top to bottom by their bottom edge, then left to right.
// The bottom edge sits just under the baseline, so mixed font sizes on one
// baseline stay within the same line tolerance.
func (to *TextOrganizer) sortGlyphs(glyphs []pdf.Glyph) []pdf.Glyph {
	sorted := make([]pdf.Glyph, len(glyphs))
	copy(sorted, glyphs)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y1 != sorted[j].Y1 {
			return sorted[i].Y1 < sorted[j].Y1
		}
		return sorted[i].X0 < sorted[j].X0
	})

	return sorted
}

// groupIntoLines groups sorted glyphs into lines based on Y position
func (to *TextOrganizer) groupIntoLines(glyphs []pdf.Glyph) [][]pdf.Glyph {
	if len(glyphs) == 0 {
		return nil
	}

	var lines [][]pdf.Glyph
	var currentLine []pdf.Glyph
	currentY := glyphs[0].Y1

	for _, g := range glyphs {
		// Check if this glyph is on a new line
		if math.Abs(g.Y1-currentY) > to.yTolerance {
			if len(currentLine) > 0 {
				lines = append(lines, currentLine)
			}
			currentLine = []pdf.Glyph{g}
			currentY = g.Y1
		} else {
			currentLine = append(currentLine, g)
		}
	}

	// Add the last line
	if len(currentLine) > 0 {
		lines = append(lines, currentLine)
	}

	// Sort every line left to right
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].X0 < line[j].X0
		})
	}

	return lines
}

// isWordGap reports whether the gap between two neighbouring glyphs separates words
func (to *TextOrganizer) isWordGap(prev, next pdf.Glyph) bool {
	gap := next.X0 - prev.X1
	return gap > to.xTolerance || gap > next.Width()*to.spaceRatio
}

// breaksSpan reports whether next starts a new span after prev
func (to *TextOrganizer) breaksSpan(prev, next pdf.Glyph) bool {
	if prev.Font != next.Font || math.Abs(prev.FontSize-next.FontSize) > sizeTolerance {
		return true
	}
	return next.X0-prev.X1 > math.Max(to.xTolerance, next.FontSize)
}

// extractWordsFromLine extracts words from a single sorted line of glyphs
func (to *TextOrganizer) extractWordsFromLine(line []pdf.Glyph) []Word {
	if len(line) == 0 {
		return nil
	}

	var words []Word
	currentWord := []pdf.Glyph{line[0]}

	for i := 1; i < len(line); i++ {
		if to.isWordGap(line[i-1], line[i]) {
			words = append(words, createWord(currentWord))
			currentWord = nil
		}
		currentWord = append(currentWord, line[i])
	}

	// Add the last word
	if len(currentWord) > 0 {
		words = append(words, createWord(currentWord))
	}

	return words
}

// createWord creates a Word from a group of glyphs
func createWord(glyphs []pdf.Glyph) Word {
	var text strings.Builder
	for _, g := range glyphs {
		text.WriteString(g.Text)
	}

	return Word{
		Text:   text.String(),
		BBox:   boundsOf(glyphs),
		Glyphs: glyphs,
	}
}

// createSpan creates a Span, inserting a space wherever a word gap occurs
func (to *TextOrganizer) createSpan(glyphs []pdf.Glyph) Span {
	var text strings.Builder
	for i, g := range glyphs {
		if i > 0 && to.isWordGap(glyphs[i-1], g) {
			text.WriteString(" ")
		}
		text.WriteString(g.Text)
	}

	return Span{
		Text:     text.String(),
		BBox:     boundsOf(glyphs),
		Font:     glyphs[0].Font,
		FontSize: glyphs[0].FontSize,
		Glyphs:   glyphs,
	}
}

// boundsOf returns the union of the glyph boxes
func boundsOf(glyphs []pdf.Glyph) pdf.BoundingBox {
	bbox := glyphs[0].GetBBox()
	for _, g := range glyphs[1:] {
		bbox = bbox.Union(g.GetBBox())
	}
	return bbox
}
