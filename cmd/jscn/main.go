// Command jscn is a CLI filter around the jscn compiler library: it
// reads JSCN source and writes the equivalent JSON Schema draft-07
// document. It is an external collaborator of the core compiler:
// argument parsing, file I/O and exit codes live here, never in the
// core.
package main

import (
	"fmt"
	"os"
)

// Version and Commit are set at build time via -ldflags, mirroring
// kausys/openapi's cmd/openapi/main.go.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
