package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/triage/internal/ingest"
	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/pipeline"
)

var (
	batchNoDedup bool
	batchSize    int
	batchPretty  bool
)

// logExtensions are the file types picked up by the directory walk.
var logExtensions = map[string]bool{".log": true, ".txt": true}

func isLogFile(path string) bool {
	return logExtensions[strings.ToLower(filepath.Ext(path))]
}

// batchCmd extracts reports from every log file under a directory.
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract reports from every log file in a directory",
	Long: `Walk a directory, extract a report from every .log and .txt file, and
write the results to the configured output. Reports that normalized to the
same error and component collapse into one with a duplicate count.

Examples:
  # Process a directory of crash logs
  triage batch /var/log/crashes

  # Keep every report, including duplicates
  triage batch --no-dedup /var/log/crashes`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchNoDedup, "no-dedup", false, "do not collapse duplicate reports")
	batchCmd.Flags().IntVar(&batchSize, "batch-size", 0, "flush after this many reports (0 flushes once at the end)")
	batchCmd.Flags().BoolVar(&batchPretty, "pretty", false, "indent JSON output")
}

func runBatch(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := buildOutput(cfg, batchPretty)
	if err != nil {
		return err
	}
	defer out.Close()

	dedupCfg := pipeline.DedupConfig{}
	collector := pipeline.NewCollector(pipeline.NewDeduplicator(dedupCfg), out, batchSize)

	ctor, err := ingest.Get(model.SourceLogFile)
	if err != nil {
		return err
	}
	handler := ctor()

	ctx := cmd.Context()
	processed := 0
	walkErr := filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLogFile(path) {
			return nil
		}

		text, meta, err := handler.Ingest(ctx, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		report, err := eng.Process(text, meta)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		processed++

		if batchNoDedup {
			return out.Write(ctx, report)
		}
		return collector.Add(ctx, report)
	})
	if walkErr != nil {
		return walkErr
	}

	if err := collector.Flush(ctx); err != nil {
		return err
	}
	if processed == 0 {
		return fmt.Errorf("no log files found under %s", args[0])
	}
	return nil
}
