package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/triage/internal/engine/registry"
)

// patternsCmd inspects the built-in matcher catalogue.
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show the built-in extraction pattern catalogue",
	Long: `Show the version of the built-in pattern catalogue and the number of
strict and loose matchers registered per field.`,
	RunE: runPatterns,
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	reg := registry.Default()
	fmt.Fprintf(cmd.OutOrStdout(), "pattern catalogue version %s\n\n", reg.Version())

	for _, name := range reg.Fields() {
		fp, _ := reg.Field(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s strict=%d loose=%d\n",
			name, len(fp.Strict), len(fp.Loose))
	}
	return nil
}
