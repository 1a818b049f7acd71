// Package main implements the triage CLI for extracting structured bug
// reports from unstructured text, log files, and work items.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/triage/internal/config"
	"github.com/crimson-sun/triage/internal/logging"
)

var (
	configPath string
	cfg        *config.Config

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Extract structured bug reports from unstructured text",
	Long: `triage pulls structured fields out of bug report text, log files, and
work items: error type, component, reproduction steps, observed and expected
behavior, each with a confidence score and provenance.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logging.Init(cfg.Output.Format == "stdout", logging.ParseLevel(cfg.Log.Level), cfg.Log.RedactPII)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(serveCmd)
}
