package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyhub-apps/pdfextract-golang/internal/pdftest"
	"github.com/pyhub-apps/pdfextract-golang/pkg/extract"
	"github.com/pyhub-apps/pdfextract-golang/pkg/pdf"
)

func TestRunSpans(t *testing.T) {
	path := pdftest.WriteSample(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := RunSpans([]string{"--backend", "ledongthuc", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr.String())
	}

	var result extract.SpanResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, stdout.String())
	}
	if len(result.Pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(result.Pages))
	}
	if result.Pages[0].Spans[0].NormalizedText != "hello world" {
		t.Errorf("Unexpected first span %+v", result.Pages[0].Spans[0])
	}

	// Two space indentation
	if !strings.HasPrefix(stdout.String(), "{\n  \"pages\": [\n    {\n      \"page_number\": 1,") {
		t.Errorf("Unexpected formatting:\n%s", stdout.String()[:80])
	}
}

func TestRunSpansPages(t *testing.T) {
	path := pdftest.WriteSample(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := RunSpans([]string{"--pages", "2", "--indent", "0", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), `{"pages":[{"page_number":2,`) {
		t.Errorf("Expected compact output for page 2, got %s", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.pdf")
	bogus := filepath.Join(dir, "bogus.pdf")
	if err := os.WriteFile(bogus, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		run  func([]string, *bytes.Buffer, *bytes.Buffer) int
		args []string
		want string
	}{
		{"spans missing file", runSpans, []string{missing}, "Error: File not found: " + missing},
		{"words missing file", runWords, []string{missing, filepath.Join(dir, "out.json")}, "Error: File not found: " + missing},
		{"spans invalid file", runSpans, []string{bogus}, "Error: Invalid PDF file: "},
		{"compare missing file", runCompare, []string{missing}, "Error: File not found: " + missing},
		{"unknown backend", runSpans, []string{"--backend", "pdfium", bogus}, "Error: invalid config: "},
		{"spans no args", runSpans, nil, "Usage: extract-spans"},
		{"words one arg", runWords, []string{bogus}, "Usage: extract-words"},
		{"bad flag", runSpans, []string{"--nope", bogus}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := tt.run(tt.args, &stdout, &stderr); code != 1 {
				t.Errorf("Expected exit code 1, got %d", code)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("Expected stderr to contain %q, got %q", tt.want, stderr.String())
			}
			if stdout.Len() != 0 && tt.name != "compare missing file" {
				t.Errorf("Expected no stdout, got %q", stdout.String())
			}
		})
	}
}

func TestRunErrorOutput(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.pdf")
	if err := os.WriteFile(bogus, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, backend := range []string{"ledongthuc", "dslipak"} {
		var stdout, stderr bytes.Buffer
		RunWords([]string{"--backend", backend, bogus, filepath.Join(dir, "out.json")}, &stdout, &stderr)
		RunSpans([]string{"--backend", backend, bogus}, &stdout, &stderr)

		out := stderr.String()
		if strings.Contains(out, "ERROR") || strings.Contains(out, "stack=") {
			t.Errorf("%s: expected a single error line, got %q", backend, out)
		}
		if strings.Contains(strings.ToLower(out), "invalid pdf file: invalid pdf") {
			t.Errorf("%s: expected the error prefix once, got %q", backend, out)
		}
		if n := strings.Count(out, "Error: Invalid PDF file: "); n != 2 {
			t.Errorf("%s: expected 2 invalid file lines, got %d in %q", backend, n, out)
		}
	}

	var stdout, stderr bytes.Buffer
	if code := RunSpans([]string{"--nope", bogus}, &stdout, &stderr); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if n := strings.Count(stderr.String(), "unknown flag"); n != 1 {
		t.Errorf("Expected the flag error once, got %d in %q", n, stderr.String())
	}
}

func TestInvalidDetail(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: bad header", pdf.ErrInvalidPDF), "bad header"},
		{fmt.Errorf("failed to open PDF: %w: no xref", pdf.ErrInvalidPDF), "no xref"},
		{pdf.ErrInvalidPDF, "invalid PDF"},
	}

	for _, tt := range tests {
		if got := invalidDetail(tt.err); got != tt.want {
			t.Errorf("invalidDetail(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func runSpans(args []string, stdout, stderr *bytes.Buffer) int   { return RunSpans(args, stdout, stderr) }
func runWords(args []string, stdout, stderr *bytes.Buffer) int   { return RunWords(args, stdout, stderr) }
func runCompare(args []string, stdout, stderr *bytes.Buffer) int { return RunCompare(args, stdout, stderr) }

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := RunSpans([]string{"--help"}, &stdout, &stderr); code != 0 {
		t.Errorf("Expected exit code 0 for --help, got %d", code)
	}
	if !strings.Contains(stderr.String(), "--x-tolerance") {
		t.Errorf("Expected flag help, got %q", stderr.String())
	}
}

func TestRunWords(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteSample(t, dir)
	output := filepath.Join(dir, "words.json")

	var stdout, stderr bytes.Buffer
	code := RunWords([]string{path, output, "--pages", "1,2,3"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "Extraction complete") {
		t.Errorf("Expected completion message, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no stdout, got %q", stdout.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var result extract.WordResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	// Page 3 does not exist and is dropped
	if len(result.Pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(result.Pages))
	}
	first := result.Pages[0]
	if first.Dimensions.Width != 612 || first.Dimensions.Height != 792 {
		t.Errorf("Unexpected dimensions %+v", first.Dimensions)
	}
	if len(first.Words) == 0 || first.Words[0].Text != "Hello," {
		t.Errorf("Unexpected words %+v", first.Words)
	}
}

func TestRunCompare(t *testing.T) {
	path := pdftest.WriteSample(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := RunCompare([]string{path}, &stdout, &stderr); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "pdfcpu: 2 pages, first page 612.00 x 792.00") {
		t.Errorf("Missing inspection line in:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 1 && (fields[0] == "ledongthuc" || fields[0] == "dslipak") {
			if fields[1] != "2" {
				t.Errorf("Expected 2 pages for %s, got line %q", fields[0], line)
			}
		}
	}
	if !strings.Contains(out, "ledongthuc") || !strings.Contains(out, "dslipak") {
		t.Errorf("Expected a row per backend:\n%s", out)
	}
}
