package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/triage/internal/mcptool"
	"github.com/crimson-sun/triage/pkg/triage"
)

// serveCmd runs the MCP stdio server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction tools over MCP stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing the
normalize_bug_report and normalize_work_item tools, for use by agent
frontends.

Examples:
  triage serve
  triage serve --config triage.yaml`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	opts := []triage.Option{triage.WithEnrichmentThreshold(cfg.Enrichment.Threshold)}
	switch cfg.Enrichment.Mode {
	case "off":
	case "heuristic":
		opts = append(opts, triage.WithHeuristicEnrichment())
	case "semantic":
		opts = append(opts, triage.WithSemanticEnrichment(cfg.Enrichment.ModelPath, cfg.Enrichment.VocabPath))
	}

	tr, err := triage.New(opts...)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	srv, err := mcptool.NewServer(tr)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
