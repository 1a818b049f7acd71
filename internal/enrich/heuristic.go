package enrich

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/crimson-sun/triage/internal/model"
)

// Heuristic infers missing fields from ones already extracted, without any
// model. It is the default collaborator when enrichment is enabled.
type Heuristic struct{}

// NewHeuristic creates a Heuristic enricher.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Enrich walks the low-confidence fields and fills the ones a rule can
// infer. Evidence is the head of the original text.
func (h *Heuristic) Enrich(r *model.Report, rawText string, threshold float64) error {
	low := r.LowConfidenceFields(threshold)
	if len(low) == 0 {
		slog.Debug("all fields meet confidence threshold, skipping enrichment")
		return nil
	}

	evidence := rawText
	if len(evidence) > model.MaxEvidenceLen {
		evidence = evidence[:model.MaxEvidenceLen]
	}

	for _, name := range low {
		value := h.infer(name, r)
		if value == "" {
			continue
		}
		if writeField(r, name, value, EnrichedConfidence, evidence, threshold) {
			slog.Debug("field enriched", "field", name)
		}
	}

	r.EnrichmentApplied = true
	return nil
}

// infer derives a value for one field from the rest of the report.
func (h *Heuristic) infer(fieldName string, r *model.Report) string {
	switch fieldName {
	case "expected_behavior":
		// A described failure implies its negation was expected.
		if r.ObservedBehavior.Filled() {
			observed := strings.TrimSpace(*r.ObservedBehavior.Value)
			if observed != "" {
				return fmt.Sprintf("System should not %s", observed)
			}
		}
	case "observed_behavior":
		// An identified error is itself the observable symptom.
		if r.ErrorType.Filled() && r.ErrorType.Confidence >= model.ThresholdHigh {
			return fmt.Sprintf("%s occurred", *r.ErrorType.Value)
		}
	}
	return ""
}
