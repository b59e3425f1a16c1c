package cli

import (
	"io"

	"github.com/pyhub-apps/pdfextract-golang/pkg/extract"
)

// RunSpans prints the span JSON of a PDF to stdout
func RunSpans(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("extract-spans", "[flags] <pdf_path>", stderr)
	pages := fs.String("pages", "", "page selection, e.g. 1,3 or 2-4 (default: all pages)")

	cfg, logger, err := start(fs, args, 1, stderr)
	if err != nil {
		return exitCode(err, stderr)
	}
	defer logger.Close()

	path := fs.Arg(0)
	logger.Debug("extracting spans", "path", path, "backend", cfg.Backend)

	result, err := extract.ExtractSpansFile(path,
		extract.WithBackend(cfg.Backend),
		extract.WithOrganizer(cfg.Organizer()),
		extract.WithPageSelection(*pages),
		extract.WithLogger(logger),
	)
	if err != nil {
		logger.Debug("span extraction failed", "path", path, "error", err)
		return reportError(stderr, path, err)
	}

	if err := writeJSON(stdout, result, cfg.Indent); err != nil {
		return reportError(stderr, path, err)
	}
	return 0
}
