// Package cli implements the command line tools. Each Run function takes
// the arguments after the program name and returns the exit code.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/pyhub-apps/pdfextract-golang/internal/config"
	"github.com/pyhub-apps/pdfextract-golang/pkg/logging"
	"github.com/pyhub-apps/pdfextract-golang/pkg/pdf"
)

// errUsage marks a run that printed usage or a flag error instead of doing work
var errUsage = errors.New("usage")

// newFlagSet creates the flag set shared by every tool
func newFlagSet(name, usage string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s %s\n\nFlags:\n", name, usage)
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	return fs
}

// start parses args, loads the configuration and creates a logger tagged
// with a fresh run id. It returns errUsage when the positional argument
// count is not nargs or a flag fails to parse, as pflag has printed both.
func start(fs *pflag.FlagSet, args []string, nargs int, stderr io.Writer) (*config.Config, *logging.StdLogger, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != nargs {
		fs.Usage()
		return nil, nil, errUsage
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		return nil, nil, err
	}

	lc := cfg.Logging()
	lc.Output = stderr
	logger, err := logging.New(lc)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger.With("run_id", uuid.NewString()), nil
}

// exitCode maps a start failure to the process exit code
func exitCode(err error, stderr io.Writer) int {
	switch {
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// reportError prints an extraction failure in the form callers match on
func reportError(stderr io.Writer, path string, err error) int {
	switch {
	case errors.Is(err, pdf.ErrFileNotFound):
		fmt.Fprintf(stderr, "Error: File not found: %s\n", path)
	case errors.Is(err, pdf.ErrInvalidPDF):
		fmt.Fprintf(stderr, "Error: Invalid PDF file: %s\n", invalidDetail(err))
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// invalidDetail drops everything up to the ErrInvalidPDF text from err
func invalidDetail(err error) string {
	msg := err.Error()
	prefix := pdf.ErrInvalidPDF.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 && len(msg) > i+len(prefix) {
		return msg[i+len(prefix):]
	}
	return msg
}

// writeJSON encodes v with the configured indentation and a trailing newline
func writeJSON(w io.Writer, v interface{}, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	return enc.Encode(v)
}
