package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/crimson-sun/triage/internal/config"
	"github.com/crimson-sun/triage/internal/engine"
	"github.com/crimson-sun/triage/internal/engine/registry"
	"github.com/crimson-sun/triage/internal/enrich"
	"github.com/crimson-sun/triage/internal/enrich/semantic"
	"github.com/crimson-sun/triage/internal/metrics"
	"github.com/crimson-sun/triage/internal/output"
	"github.com/crimson-sun/triage/internal/output/async"
	"github.com/crimson-sun/triage/internal/output/file"
	"github.com/crimson-sun/triage/internal/output/stdout"
	"github.com/crimson-sun/triage/internal/output/webhook"
)

// buildEngine assembles the extraction engine from config. The returned
// cleanup function releases enrichment model resources and is never nil.
func buildEngine(cfg *config.Config) (*engine.Engine, func() error, error) {
	cleanup := func() error { return nil }

	opts := []engine.Option{
		engine.WithEnrichmentThreshold(cfg.Enrichment.Threshold),
		engine.WithMetrics(metrics.New(prometheus.DefaultRegisterer)),
	}

	switch cfg.Enrichment.Mode {
	case "off":
	case "heuristic":
		opts = append(opts, engine.WithEnricher(enrich.NewHeuristic()))
	case "semantic":
		enr, err := semantic.NewONNX(cfg.Enrichment.ModelPath, cfg.Enrichment.VocabPath,
			semantic.WithSimilarityFloor(cfg.Enrichment.SimilarityFloor))
		if err != nil {
			return nil, nil, fmt.Errorf("loading enrichment model: %w", err)
		}
		cleanup = enr.Close
		opts = append(opts, engine.WithEnricher(enr))
	}

	return engine.New(registry.Default(), opts...), cleanup, nil
}

// buildOutput assembles the configured output destination. Webhook outputs
// are wrapped in an async writer so slow endpoints never stall extraction.
func buildOutput(cfg *config.Config, pretty bool) (output.Output, error) {
	verbosity, err := output.ParseVerbosity(cfg.Output.Verbosity)
	if err != nil {
		return nil, err
	}

	switch cfg.Output.Format {
	case "stdout":
		return stdout.New(verbosity, pretty), nil
	case "file":
		return file.New(cfg.Output.Path, verbosity,
			file.WithMaxSize(int64(cfg.Output.MaxFileSizeMB)<<20))
	case "webhook":
		wh := webhook.New(cfg.Output.WebhookURL, verbosity,
			webhook.WithBatchSize(cfg.Output.BatchSize))
		return async.New(wh), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", cfg.Output.Format)
	}
}
