package extract

import "github.com/pyhub-apps/pdfextract-golang/pkg/pdf"

// BBox is a span box as origin plus size
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Span is a run of text sharing one font and size, with its normalized form
type Span struct {
	Text           string `json:"text"`
	NormalizedText string `json:"normalized_text"`
	BBox           BBox   `json:"bbox"`
}

// SpanPage is one page of span output
type SpanPage struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
	Spans      []Span `json:"spans"`
}

// SpanResult is the complete span extraction of a document
type SpanResult struct {
	Pages []SpanPage `json:"pages"`
}

// WordBBox is a word box as two corners
type WordBBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Word is one token with its position in the block/line/word hierarchy
type Word struct {
	Text           string   `json:"text"`
	NormalizedText string   `json:"normalized_text"`
	BBox           WordBBox `json:"bbox"`
	BlockNo        int      `json:"block_no"`
	LineNo         int      `json:"line_no"`
	WordNo         int      `json:"word_no"`
}

// Dimensions is the page size in points
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WordPage is one page of word output
type WordPage struct {
	PageNumber int        `json:"page_number"`
	Text       string     `json:"text"`
	Words      []Word     `json:"words"`
	Dimensions Dimensions `json:"dimensions"`
}

// WordResult is the complete word extraction of a document
type WordResult struct {
	Pages []WordPage `json:"pages"`
}

// spanBBox converts a corner box into origin plus size, clamping negative sizes
func spanBBox(b pdf.BoundingBox) BBox {
	return BBox{
		X:      b.X0,
		Y:      b.Y0,
		Width:  max(b.Width(), 0),
		Height: max(b.Height(), 0),
	}
}

func wordBBox(b pdf.BoundingBox) WordBBox {
	return WordBBox{X0: b.X0, Y0: b.Y0, X1: b.X1, Y1: b.Y1}
}
