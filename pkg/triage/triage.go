package triage

import (
	"context"
	"fmt"

	"github.com/crimson-sun/triage/internal/engine"
	"github.com/crimson-sun/triage/internal/enrich"
	"github.com/crimson-sun/triage/internal/enrich/semantic"
	"github.com/crimson-sun/triage/internal/ingest"
	"github.com/crimson-sun/triage/internal/model"
)

// Triage is a bug report extraction engine. Safe for concurrent use.
type Triage struct {
	engine *engine.Engine
	closer interface{ Close() error }
}

// New creates a Triage instance. With semantic enrichment enabled this loads
// model files and pre-embeds the field prototypes, which is expensive —
// create once, reuse across requests.
func New(opts ...Option) (*Triage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg, err := buildRegistry(o)
	if err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}

	t := &Triage{}
	engOpts := []engine.Option{engine.WithEnrichmentThreshold(o.threshold)}
	switch o.enrichment {
	case "heuristic":
		engOpts = append(engOpts, engine.WithEnricher(enrich.NewHeuristic()))
	case "semantic":
		enr, err := semantic.NewONNX(o.modelPath, o.vocabPath)
		if err != nil {
			return nil, fmt.Errorf("triage: %w", err)
		}
		t.closer = enr
		engOpts = append(engOpts, engine.WithEnricher(enr))
	}

	t.engine = engine.New(reg, engOpts...)
	return t, nil
}

// Process extracts a normalized report from free-form text.
func (t *Triage) Process(text string) (Report, error) {
	handler, err := ingest.Get(model.SourceFreetext)
	if err != nil {
		return Report{}, err
	}
	clean, meta, err := handler().Ingest(context.Background(), text)
	if err != nil {
		return Report{}, err
	}
	r, err := t.engine.Process(clean, meta)
	if err != nil {
		return Report{}, err
	}
	return reportFromModel(r), nil
}

// ProcessBatch extracts reports from multiple texts, failing on the first
// text that cannot be processed.
func (t *Triage) ProcessBatch(texts []string) ([]Report, error) {
	reports := make([]Report, 0, len(texts))
	for _, text := range texts {
		r, err := t.Process(text)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// ProcessWorkItem extracts a report from a work item JSON payload, as
// returned by a tracker API.
func (t *Triage) ProcessWorkItem(payload string) (Report, error) {
	handler, err := ingest.Get(model.SourceWorkItem)
	if err != nil {
		return Report{}, err
	}
	text, meta, err := handler().Ingest(context.Background(), payload)
	if err != nil {
		return Report{}, err
	}
	r, err := t.engine.Process(text, meta)
	if err != nil {
		return Report{}, err
	}
	return reportFromModel(r), nil
}

// Close releases enrichment model resources. A no-op unless semantic
// enrichment was enabled.
func (t *Triage) Close() error {
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}
