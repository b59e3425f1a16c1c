package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pyhub-apps/pdfextract-golang/pkg/extract"
)

// RunWords writes the word JSON of a PDF to an output file
func RunWords(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("extract-words", "[flags] <pdf_path> <output_json>", stderr)
	pages := fs.String("pages", "", "comma separated page numbers or ranges, e.g. 1,2,3 (default: all pages)")

	cfg, logger, err := start(fs, args, 2, stderr)
	if err != nil {
		return exitCode(err, stderr)
	}
	defer logger.Close()

	path, output := fs.Arg(0), fs.Arg(1)
	logger.Debug("extracting words", "path", path, "output", output, "backend", cfg.Backend)

	result, err := extract.ExtractWordsFile(path,
		extract.WithBackend(cfg.Backend),
		extract.WithOrganizer(cfg.Organizer()),
		extract.WithPageSelection(*pages),
		extract.WithRelaxedValidation(cfg.RelaxedValidation),
		extract.WithLogger(logger),
	)
	if err != nil {
		logger.Debug("word extraction failed", "path", path, "error", err)
		return reportError(stderr, path, err)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, result, cfg.Indent); err != nil {
		return reportError(stderr, path, err)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return reportError(stderr, path, fmt.Errorf("failed to write output: %w", err))
	}

	logger.Debug("wrote words", "output", output, "pages", len(result.Pages))
	fmt.Fprintln(stderr, "Extraction complete")
	return 0
}
