// Command extract-spans prints the normalized text spans of a PDF as JSON.
package main

import (
	"os"

	"github.com/pyhub-apps/pdfextract-golang/internal/cli"
)

func main() {
	os.Exit(cli.RunSpans(os.Args[1:], os.Stdout, os.Stderr))
}
