package model

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion identifies the Report wire format. Bump whenever field names
// or semantics change so consumers can branch on compatibility.
const SchemaVersion = "1.0.0"

// CoreFieldCount is the number of mandatory extractable fields.
const CoreFieldCount = 5

// Canonical names of the mandatory fields, in presentation order.
var CoreFieldNames = []string{
	"error_type",
	"component_module",
	"trigger_repro_steps",
	"observed_behavior",
	"expected_behavior",
}

// Report is the canonical normalized bug record every source maps into.
// Each field carries its own confidence metadata so downstream consumers can
// reason about extraction reliability instead of raw text.
type Report struct {
	// Identity
	BugID         string `json:"bug_id"`
	SchemaVersion string `json:"schema_version"`

	Source SourceMetadata `json:"source_metadata"`

	// Mandatory extracted fields
	ErrorType         Field `json:"error_type"`
	ComponentModule   Field `json:"component_module"`
	TriggerReproSteps Field `json:"trigger_repro_steps"`
	ObservedBehavior  Field `json:"observed_behavior"`
	ExpectedBehavior  Field `json:"expected_behavior"`

	// Optional enrichment-only fields
	Severity              *Field `json:"severity,omitempty"`
	Environment           *Field `json:"environment,omitempty"`
	FailureClassification *Field `json:"failure_classification,omitempty"`

	// Aggregate metrics
	OverallConfidence      float64 `json:"overall_confidence"`
	FieldsExtractedByRegex int     `json:"fields_extracted_by_regex"`
	FieldsEnrichedByNLP    int     `json:"fields_enriched_by_nlp"`
	TotalExtractableFields int     `json:"total_extractable_fields"`

	// DuplicateCount is set when batch deduplication collapses reports that
	// normalized to the same error and component. 0 means not deduplicated.
	DuplicateCount int `json:"duplicate_count,omitempty"`

	// Processing metadata
	ProcessedAt       time.Time `json:"processing_timestamp"`
	EnrichmentApplied bool      `json:"nlp_enrichment_applied"`
}

// NewReport creates an empty report shell with a fresh id.
func NewReport(meta SourceMetadata) *Report {
	return &Report{
		BugID:                  uuid.NewString(),
		SchemaVersion:          SchemaVersion,
		Source:                 meta,
		TotalExtractableFields: CoreFieldCount,
		ProcessedAt:            time.Now().UTC(),
	}
}

// CoreField returns a pointer to the mandatory field with the given
// canonical name, or nil for unknown names.
func (r *Report) CoreField(name string) *Field {
	switch name {
	case "error_type":
		return &r.ErrorType
	case "component_module":
		return &r.ComponentModule
	case "trigger_repro_steps":
		return &r.TriggerReproSteps
	case "observed_behavior":
		return &r.ObservedBehavior
	case "expected_behavior":
		return &r.ExpectedBehavior
	}
	return nil
}

// CoreFields returns the five mandatory fields in canonical order.
func (r *Report) CoreFields() []*Field {
	fields := make([]*Field, 0, CoreFieldCount)
	for _, name := range CoreFieldNames {
		fields = append(fields, r.CoreField(name))
	}
	return fields
}

// CalcOverallConfidence computes the completeness-weighted average
// confidence across the mandatory fields: the mean confidence of filled
// fields multiplied by the filled fraction, so undetected fields drag the
// aggregate toward zero. Returns exactly 0 when every field is nil.
// Always computed from current field state, never cached.
func (r *Report) CalcOverallConfidence() float64 {
	var sum float64
	var filled int
	for _, f := range r.CoreFields() {
		if f.Filled() {
			sum += f.Confidence
			filled++
		}
	}
	if filled == 0 {
		return 0.0
	}
	avg := sum / float64(filled)
	return avg * float64(filled) / float64(CoreFieldCount)
}

// LowConfidenceFields returns the names of mandatory fields whose value is
// nil or whose confidence is strictly below threshold. This query is the
// sole write-authorization mechanism for enrichment collaborators.
func (r *Report) LowConfidenceFields(threshold float64) []string {
	var names []string
	for _, name := range CoreFieldNames {
		f := r.CoreField(name)
		if !f.Filled() || f.Confidence < threshold {
			names = append(names, name)
		}
	}
	return names
}
