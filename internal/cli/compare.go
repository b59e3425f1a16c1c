package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pyhub-apps/pdfextract-golang/internal/config"
	"github.com/pyhub-apps/pdfextract-golang/pkg/pdf"
)

// backendStats summarizes one backend's view of a document
type backendStats struct {
	Backend string
	Pages   int
	Glyphs  int
	Spans   int
	Words   int
	Elapsed time.Duration
	Err     error
}

// RunCompare opens a PDF with every backend and prints what each one extracts
func RunCompare(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("compare-backends", "[flags] <pdf_path>", stderr)

	cfg, logger, err := start(fs, args, 1, stderr)
	if err != nil {
		return exitCode(err, stderr)
	}
	defer logger.Close()

	path := fs.Arg(0)

	fmt.Fprintf(stdout, "File: %s\n", path)
	if inspection, err := pdf.Inspect(path, cfg.RelaxedValidation); err != nil {
		if errors.Is(err, pdf.ErrFileNotFound) {
			return reportError(stderr, path, err)
		}
		fmt.Fprintf(stdout, "pdfcpu: %v\n", err)
	} else if len(inspection.Dimensions) > 0 {
		first := inspection.Dimensions[0]
		fmt.Fprintf(stdout, "pdfcpu: %d pages, first page %.2f x %.2f\n", inspection.PageCount, first.Width, first.Height)
	} else {
		fmt.Fprintf(stdout, "pdfcpu: %d pages\n", inspection.PageCount)
	}

	fmt.Fprintf(stdout, "\n%-12s %6s %8s %7s %7s %12s\n", "backend", "pages", "glyphs", "spans", "words", "time")

	var errs []error
	for _, backend := range pdf.Backends {
		stats := compareBackend(path, backend, cfg)
		if stats.Err != nil {
			logger.Warn("backend failed", "backend", backend, "error", stats.Err)
			fmt.Fprintf(stdout, "%-12s error: %v\n", backend, stats.Err)
			errs = append(errs, stats.Err)
			continue
		}
		fmt.Fprintf(stdout, "%-12s %6d %8d %7d %7d %12v\n",
			stats.Backend, stats.Pages, stats.Glyphs, stats.Spans, stats.Words, stats.Elapsed.Round(time.Microsecond))
	}

	if len(errs) == len(pdf.Backends) {
		return reportError(stderr, path, errors.Join(errs...))
	}
	return 0
}

func compareBackend(path, backend string, cfg *config.Config) backendStats {
	stats := backendStats{Backend: backend}
	start := time.Now()

	doc, err := pdf.OpenWithBackend(path, backend)
	if err != nil {
		stats.Err = err
		return stats
	}
	defer doc.Close()

	organizer := cfg.Organizer()
	stats.Pages = doc.PageCount()
	for _, page := range doc.GetPages() {
		glyphs, err := page.GetGlyphs()
		if err != nil {
			stats.Err = fmt.Errorf("page %d: %w", page.GetPageNumber(), err)
			return stats
		}
		stats.Glyphs += len(glyphs)
		stats.Spans += len(organizer.ExtractSpans(glyphs))
		stats.Words += len(organizer.ExtractWords(glyphs))
	}

	stats.Elapsed = time.Since(start)
	return stats
}
