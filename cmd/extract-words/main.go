// Command extract-words writes word boxes with block, line and word numbers
// to a JSON file.
package main

import (
	"os"

	"github.com/pyhub-apps/pdfextract-golang/internal/cli"
)

func main() {
	os.Exit(cli.RunWords(os.Args[1:], os.Stdout, os.Stderr))
}
