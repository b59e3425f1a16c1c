package pdf

import (
	"errors"
	"fmt"
	"os"
)

// openers maps backend names to their constructors
var openers = map[string]func(string) (Document, error){
	BackendLedongthuc: OpenWithLedongthuc,
	BackendDslipak:    OpenWithDslipak,
	BackendMuPDF:      OpenWithMuPDF,
}

// Open opens a PDF file with the first backend that accepts it.
// Backends are tried in the order of Backends.
func Open(filepath string) (Document, error) {
	if err := checkFile(filepath); err != nil {
		return nil, err
	}

	var errs []error
	for _, name := range Backends {
		doc, err := openers[name](filepath)
		if err == nil {
			return doc, nil
		}
		errs = append(errs, err)
	}

	return nil, fmt.Errorf("%w: %w", ErrInvalidPDF, errors.Join(errs...))
}

// OpenWithBackend opens a PDF file with the named backend.
// An empty name behaves like Open.
func OpenWithBackend(filepath, backend string) (Document, error) {
	if backend == "" {
		return Open(filepath)
	}

	opener, ok := openers[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	if err := checkFile(filepath); err != nil {
		return nil, err
	}

	doc, err := opener(filepath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPDF, err)
	}
	return doc, nil
}

// IsBackend reports whether name is a known backend
func IsBackend(name string) bool {
	_, ok := openers[name]
	return ok
}

// checkFile separates missing files from unparsable ones
func checkFile(filepath string) error {
	info, err := os.Stat(filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, filepath)
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPDF, filepath)
	}
	return nil
}
