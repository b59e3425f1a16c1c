package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// openAndPanic opens path and panics after the open succeeded, the way a
// backend library can while reading the page tree
func openAndPanic(path string, opened **os.File) (err error) {
	var f *os.File
	defer closeOnError(&err, &f)
	defer recoverError(&err, "failed to open")

	f, err = os.Open(path)
	if err != nil {
		return err
	}
	*opened = f

	panic("malformed page tree")
}

func TestCloseOnErrorAfterPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	var opened *os.File
	err := openAndPanic(path, &opened)
	if err == nil {
		t.Fatal("Expected the panic to be returned as an error")
	}
	if opened == nil {
		t.Fatal("Expected the file to have been opened")
	}

	if _, err := opened.Stat(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Expected the file to be closed, got %v", err)
	}
}

func TestCloseOnErrorKeepsFileOnSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	open := func() (f *os.File, err error) {
		defer closeOnError(&err, &f)
		return os.Open(path)
	}

	f, err := open()
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	defer f.Close()

	if _, err := f.Stat(); err != nil {
		t.Errorf("Expected the file to stay open, got %v", err)
	}
}
