// Package pipeline wires an ingest handler, the extraction engine, and an
// output into a processing pipeline.
package pipeline

import (
	"context"
	"fmt"

	"github.com/crimson-sun/triage/internal/engine"
	"github.com/crimson-sun/triage/internal/ingest"
	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/output"
)

// Pipeline connects ingestion, extraction, and output.
type Pipeline struct {
	engine *engine.Engine
	output output.Output
	dedup  *Deduplicator
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDeduplication collapses batch reports that normalized to the same
// error and component.
func WithDeduplication(d *Deduplicator) Option {
	return func(p *Pipeline) { p.dedup = d }
}

// New creates a Pipeline from the given components.
func New(eng *engine.Engine, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine: eng,
		output: out,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process ingests one source through the handler registered for sourceType,
// extracts a report, and writes it to the output. The source argument is
// handler-specific: raw text, a file path, or a JSON payload.
func (p *Pipeline) Process(ctx context.Context, sourceType, source string) (*model.Report, error) {
	ctor, err := ingest.Get(sourceType)
	if err != nil {
		return nil, fmt.Errorf("pipeline ingest: %w", err)
	}

	text, meta, err := ctor().Ingest(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("pipeline ingest: %w", err)
	}

	report, err := p.engine.Process(text, meta)
	if err != nil {
		return nil, fmt.Errorf("pipeline process: %w", err)
	}

	if err := p.output.Write(ctx, report); err != nil {
		return nil, fmt.Errorf("pipeline output: %w", err)
	}
	return report, nil
}

// ProcessFreetext runs free-form text through the pipeline.
func (p *Pipeline) ProcessFreetext(ctx context.Context, text string) (*model.Report, error) {
	return p.Process(ctx, model.SourceFreetext, text)
}

// ProcessLogFile runs the contents of a log file through the pipeline.
func (p *Pipeline) ProcessLogFile(ctx context.Context, path string) (*model.Report, error) {
	return p.Process(ctx, model.SourceLogFile, path)
}

// ProcessWorkItem runs a work item JSON payload through the pipeline.
func (p *Pipeline) ProcessWorkItem(ctx context.Context, payload string) (*model.Report, error) {
	return p.Process(ctx, model.SourceWorkItem, payload)
}

// ProcessBatch ingests and extracts every source, deduplicates the batch if
// configured, then writes the surviving reports in order. Fails on the first
// source that cannot be ingested or written.
func (p *Pipeline) ProcessBatch(ctx context.Context, sourceType string, sources []string) ([]*model.Report, error) {
	ctor, err := ingest.Get(sourceType)
	if err != nil {
		return nil, fmt.Errorf("pipeline ingest: %w", err)
	}

	reports := make([]*model.Report, 0, len(sources))
	for _, src := range sources {
		text, meta, err := ctor().Ingest(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("pipeline ingest: %w", err)
		}
		report, err := p.engine.Process(text, meta)
		if err != nil {
			return nil, fmt.Errorf("pipeline process: %w", err)
		}
		reports = append(reports, report)
	}

	if p.dedup != nil {
		reports = p.dedup.DeduplicateBatch(reports)
	}

	for _, report := range reports {
		if err := p.output.Write(ctx, report); err != nil {
			return nil, fmt.Errorf("pipeline output: %w", err)
		}
	}
	return reports, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
