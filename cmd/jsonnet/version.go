package main

import (
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the jsonnet interpreter version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion()
		},
	}
}
