package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/triage/internal/pipeline"
)

var processPretty bool

// processCmd extracts a report from one input.
var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Extract a structured report from one bug report",
	Long: `Extract a structured report from a single bug report.

With a file argument the input is read as a log file. Without one, or with
"-", free-form text is read from stdin.

Examples:
  # Process a log file
  triage process crash.log

  # Process pasted text
  cat description.txt | triage process -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processPretty, "pretty", false, "indent JSON output")
}

func runProcess(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := buildOutput(cfg, processPretty)
	if err != nil {
		return err
	}

	p := pipeline.New(eng, out)
	defer p.Close()

	ctx := cmd.Context()
	if len(args) == 0 || args[0] == "-" {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		_, err = p.ProcessFreetext(ctx, string(text))
		return err
	}

	_, err = p.ProcessLogFile(ctx, args[0])
	return err
}
