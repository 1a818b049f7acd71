// Package enrich defines the optional enrichment collaborator that fills
// low-confidence fields after pattern extraction. Implementations are
// injected into the engine and may only write into fields the report's
// LowConfidenceFields query names; the engine never trusts them beyond that.
package enrich

import "github.com/crimson-sun/triage/internal/model"

// EnrichedConfidence is the baseline confidence assigned to values the
// collaborator infers, before any implementation-specific scaling.
const EnrichedConfidence = 0.5

// Enricher fills low-confidence fields of a report in place. rawText is the
// original input; threshold is the confidence gate below which a field may
// be written. Implementations must tag written fields with
// model.TierEnriched and increment the report's enriched-field counter.
type Enricher interface {
	Enrich(r *model.Report, rawText string, threshold float64) error
}

// writeField applies an inferred value to a named core field, re-checking
// the gate so a filled, at-threshold field is never downgraded.
func writeField(r *model.Report, name, value string, confidence float64, evidence string, threshold float64) bool {
	f := r.CoreField(name)
	if f == nil {
		return false
	}
	if f.Filled() && f.Confidence >= threshold {
		return false
	}
	f.Set(value, confidence, model.TierEnriched, evidence)
	r.FieldsEnrichedByNLP++
	return true
}
