package triage

import (
	"time"

	"github.com/crimson-sun/triage/internal/model"
)

// Field is one extracted attribute of a bug report.
// This is the stable public type — internal representations may evolve
// independently without breaking consumers.
type Field struct {
	Value      string  `json:"value,omitempty"`      // extracted text, "" when Present is false
	Present    bool    `json:"present"`              // whether anything was extracted
	Confidence float64 `json:"confidence"`           // 0.0 to 1.0
	Source     string  `json:"source"`               // extraction tier name
	Evidence   string  `json:"evidence,omitempty"`   // surrounding raw text
	Level      string  `json:"level"`                // high, medium, low
}

// Report is a normalized bug report with per-field provenance.
type Report struct {
	BugID         string `json:"bug_id"`
	SchemaVersion string `json:"schema_version"`

	ErrorType         Field `json:"error_type"`
	Component         Field `json:"component_module"`
	ReproSteps        Field `json:"trigger_repro_steps"`
	ObservedBehavior  Field `json:"observed_behavior"`
	ExpectedBehavior  Field `json:"expected_behavior"`

	OverallConfidence float64   `json:"overall_confidence"`
	FieldsExtracted   int       `json:"fields_extracted"`
	EnrichmentApplied bool      `json:"enrichment_applied"`
	DuplicateCount    int       `json:"duplicate_count,omitempty"`
	SourceType        string    `json:"source_type"`
	SourceID          string    `json:"source_id"`
	ProcessedAt       time.Time `json:"processed_at"`
}

// reportFromModel converts the internal report to the public Report type.
func reportFromModel(r *model.Report) Report {
	return Report{
		BugID:             r.BugID,
		SchemaVersion:     r.SchemaVersion,
		ErrorType:         fieldFromModel(r.ErrorType),
		Component:         fieldFromModel(r.ComponentModule),
		ReproSteps:        fieldFromModel(r.TriggerReproSteps),
		ObservedBehavior:  fieldFromModel(r.ObservedBehavior),
		ExpectedBehavior:  fieldFromModel(r.ExpectedBehavior),
		OverallConfidence: r.OverallConfidence,
		FieldsExtracted:   r.FieldsExtractedByRegex + r.FieldsEnrichedByNLP,
		EnrichmentApplied: r.EnrichmentApplied,
		DuplicateCount:    r.DuplicateCount,
		SourceType:        r.Source.SourceType,
		SourceID:          r.Source.SourceID,
		ProcessedAt:       r.ProcessedAt,
	}
}

func fieldFromModel(f model.Field) Field {
	out := Field{
		Present:    f.Filled(),
		Confidence: f.Confidence,
		Source:     f.Source.String(),
		Level:      string(model.ClassifyConfidence(f.Confidence)),
	}
	if f.Value != nil {
		out.Value = *f.Value
	}
	if f.RawEvidence != nil {
		out.Evidence = *f.RawEvidence
	}
	return out
}
