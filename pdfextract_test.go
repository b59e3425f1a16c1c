package pdfextract

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyhub-apps/pdfextract-golang/internal/pdftest"
)

func TestOpenPDF(t *testing.T) {
	path := pdftest.WriteSample(t, t.TempDir())

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	// Check page count
	if doc.PageCount() != 2 {
		t.Errorf("Expected 2 pages, got %d", doc.PageCount())
	}

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	text, err := page.ExtractText()
	if err != nil {
		t.Fatalf("Failed to extract text: %v", err)
	}
	if !strings.Contains(text, "Hello") {
		t.Errorf("Expected text to contain 'Hello', got: %s", text)
	}
}

func TestExtractSpans(t *testing.T) {
	path := pdftest.WriteSample(t, t.TempDir())

	result, err := ExtractSpans(path, WithOrganizer(NewTextOrganizer(WithXTolerance(3))))
	if err != nil {
		t.Fatalf("Failed to extract spans: %v", err)
	}

	var normalized []string
	for _, span := range result.Pages[1].Spans {
		normalized = append(normalized, span.NormalizedText)
	}
	want := []string{"second page", "testing multipage extraction", "numbers 123 456 789", "special characters", "page 2 of 2"}
	if strings.Join(normalized, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %q, got %q", want, normalized)
	}
}

func TestExtractWords(t *testing.T) {
	path := pdftest.WriteSample(t, t.TempDir())

	result, err := ExtractWords(path, WithPages(1))
	if err != nil {
		t.Fatalf("Failed to extract words: %v", err)
	}
	if len(result.Pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(result.Pages))
	}
	if got := result.Pages[0].Words[0]; got.Text != "Hello," || got.NormalizedText != "hello" {
		t.Errorf("Unexpected first word %+v", got)
	}
}

func TestErrors(t *testing.T) {
	_, err := ExtractSpans(filepath.Join(t.TempDir(), "nope.pdf"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}

	_, err = Inspect(filepath.Join(t.TempDir(), "nope.pdf"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  HELLO,   World!  123  "); got != "hello world 123" {
		t.Errorf("Normalize() = %q", got)
	}
}
