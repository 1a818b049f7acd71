// Package metrics provides Prometheus instrumentation for the extraction
// pipeline. All methods are nil-safe so instrumentation stays optional.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	// Reports processed by source type
	ReportsProcessed *prometheus.CounterVec

	// Field extractions by field name and source tier
	FieldsExtracted *prometheus.CounterVec

	// Enrichment fills applied to low-confidence fields
	EnrichmentWrites prometheus.Counter

	// Distribution of overall report confidence
	OverallConfidence prometheus.Histogram

	// End-to-end processing latency
	ProcessDuration prometheus.Histogram
}

// New creates a Metrics instance registered against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReportsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "triage_reports_processed_total",
			Help: "Total bug reports processed by source type",
		}, []string{"source_type"}),

		FieldsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "triage_fields_extracted_total",
			Help: "Total field extractions by field name and source tier",
		}, []string{"field", "tier"}),

		EnrichmentWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "triage_enrichment_writes_total",
			Help: "Total enrichment fills applied to low-confidence fields",
		}),

		OverallConfidence: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "triage_report_overall_confidence",
			Help:    "Distribution of overall report confidence scores",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),

		ProcessDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "triage_process_duration_seconds",
			Help:    "Duration of end-to-end report processing",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncReport records one processed report.
func (m *Metrics) IncReport(sourceType string) {
	if m != nil {
		m.ReportsProcessed.WithLabelValues(sourceType).Inc()
	}
}

// IncField records one field extraction.
func (m *Metrics) IncField(field, tier string) {
	if m != nil {
		m.FieldsExtracted.WithLabelValues(field, tier).Inc()
	}
}

// AddEnrichmentWrites records enrichment fills.
func (m *Metrics) AddEnrichmentWrites(n int) {
	if m != nil && n > 0 {
		m.EnrichmentWrites.Add(float64(n))
	}
}

// ObserveConfidence records a report's overall confidence.
func (m *Metrics) ObserveConfidence(c float64) {
	if m != nil {
		m.OverallConfidence.Observe(c)
	}
}

// ObserveProcessDuration records one report's processing latency.
func (m *Metrics) ObserveProcessDuration(d time.Duration) {
	if m != nil {
		m.ProcessDuration.Observe(d.Seconds())
	}
}
