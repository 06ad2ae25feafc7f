// Package main provides the CLI entrypoint for rowmapper-generator.
//
// rowmapper-generator scans Go packages for types marked //rowmapper:mappable,
// resolves how every column reaches its field or setter, and writes one
// <Type>Mapper per type that decodes cursor rows and encodes column values.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}

		os.Exit(1)
	}
}
