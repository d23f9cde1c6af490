// Command jsonnet evaluates Jsonnet programs to JSON per the command-line
// contract described in spec.md section 6.2: a single positional input
// (file path, inline snippet with -e, or stdin), external variables bound
// with -V, and manifestation flags controlling indentation and escaping.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		if err != errSilent {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
