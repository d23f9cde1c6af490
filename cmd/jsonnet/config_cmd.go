package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	clicfg "github.com/jsonnetlang/jsonnet/internal/cli/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved CLI configuration",
		Long:  "Load .jsonnetrc and JSONNET_* environment variables and print the result actually in effect.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := clicfg.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}
