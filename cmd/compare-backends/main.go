package main

import (
	"os"

	"github.com/pyhub-apps/pdfextract-golang/internal/cli"
)

func main() {
	os.Exit(cli.RunCompare(os.Args[1:], os.Stdout, os.Stderr))
}
