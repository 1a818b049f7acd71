package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/crimson-sun/triage/internal/engine/extractor"
	"github.com/crimson-sun/triage/internal/engine/registry"
	"github.com/crimson-sun/triage/internal/engine/scorer"
	"github.com/crimson-sun/triage/internal/enrich"
	"github.com/crimson-sun/triage/internal/metrics"
	"github.com/crimson-sun/triage/internal/model"
)

// Option configures an Engine.
type Option func(*Engine)

// WithEnricher attaches an enrichment collaborator. Fields below the
// enrichment threshold after scoring are offered to it.
func WithEnricher(e enrich.Enricher) Option {
	return func(eng *Engine) { eng.enricher = e }
}

// WithEnrichmentThreshold overrides the confidence threshold below which
// fields qualify for enrichment. Default: model.ThresholdMedium.
func WithEnrichmentThreshold(t float64) Option {
	return func(eng *Engine) { eng.threshold = t }
}

// WithMetrics attaches pipeline instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(eng *Engine) { eng.metrics = m }
}

// WithScorer substitutes the confidence scorer.
func WithScorer(s *scorer.Scorer) Option {
	return func(eng *Engine) { eng.scorer = s }
}

// Engine orchestrates the extract → score → assemble → enrich pipeline.
// It is safe for concurrent use.
type Engine struct {
	extractor *extractor.Extractor
	scorer    *scorer.Scorer
	enricher  enrich.Enricher
	threshold float64
	metrics   *metrics.Metrics
}

// New creates an Engine over the given pattern registry.
func New(reg *registry.Registry, opts ...Option) *Engine {
	eng := &Engine{
		extractor: extractor.New(reg),
		scorer:    scorer.New(),
		threshold: model.ThresholdMedium,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Process converts raw bug report text into a normalized record. The
// metadata must carry a source type and source ID.
func (e *Engine) Process(text string, meta model.SourceMetadata) (*model.Report, error) {
	if meta.SourceType == "" || meta.SourceID == "" {
		return nil, fmt.Errorf("engine: source metadata requires source_type and source_id")
	}

	start := time.Now()
	r := model.NewReport(meta)

	results := e.extractor.ExtractAll(text)
	for _, name := range model.CoreFieldNames {
		field := r.CoreField(name)
		res, ok := results[name]
		if !ok || !res.Matched() {
			*field = model.EmptyField()
			continue
		}

		confidence := e.scorer.ScoreField(res.Confidence, res.Source, res.Evidence != "", len(res.Value))
		*field = model.NewField(res.Value, confidence, res.Source, res.Evidence)
		r.FieldsExtractedByRegex++
		e.metrics.IncField(name, res.Source.String())
	}

	if e.enricher != nil {
		before := r.FieldsEnrichedByNLP
		if err := e.enricher.Enrich(r, text, e.threshold); err != nil {
			slog.Warn("enrichment failed, keeping scored fields",
				"bug_id", r.BugID, "error", err)
		}
		e.metrics.AddEnrichmentWrites(r.FieldsEnrichedByNLP - before)
	}

	r.OverallConfidence = r.CalcOverallConfidence()

	e.metrics.IncReport(meta.SourceType)
	e.metrics.ObserveConfidence(r.OverallConfidence)
	e.metrics.ObserveProcessDuration(time.Since(start))

	slog.Debug("report processed",
		"bug_id", r.BugID,
		"source_type", meta.SourceType,
		"fields_extracted", r.FieldsExtractedByRegex,
		"overall_confidence", r.OverallConfidence)

	return r, nil
}

// ProcessBatch normalizes a slice of inputs. It fails fast on the first
// error.
func (e *Engine) ProcessBatch(texts []string, metas []model.SourceMetadata) ([]*model.Report, error) {
	if len(texts) != len(metas) {
		return nil, fmt.Errorf("engine: %d texts but %d metadata entries", len(texts), len(metas))
	}
	reports := make([]*model.Report, 0, len(texts))
	for i, text := range texts {
		r, err := e.Process(text, metas[i])
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
