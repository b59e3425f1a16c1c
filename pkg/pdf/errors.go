package pdf

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrFileNotFound is returned when the PDF path does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidPDF is returned when no backend can parse the file
	ErrInvalidPDF = errors.New("invalid PDF")

	// ErrPageOutOfRange is returned for page indexes outside the document
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrUnknownBackend is returned for backend names not in Backends
	ErrUnknownBackend = errors.New("unknown backend")
)

// recoverError converts a panic raised inside a backend library into an error.
// The parsing libraries panic on malformed content streams instead of
// returning errors.
func recoverError(err *error, what string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: %v", what, r)
	}
}

// closeOnError closes *f when the surrounding function returns an error.
// Defer it before recoverError so errors recovered from panics count too.
func closeOnError(err *error, f **os.File) {
	if *err != nil && *f != nil {
		(*f).Close()
		*f = nil
	}
}
