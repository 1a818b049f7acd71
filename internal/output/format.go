package output

import (
	"github.com/crimson-sun/triage/internal/model"
)

// FormatReport returns a report shaped for the given verbosity.
// At Minimal: raw evidence excerpts are dropped from every field (omitted
// from JSON via omitempty) and the caller's report is left untouched.
// At Standard/Full: the report is passed through unchanged.
func FormatReport(r *model.Report, verbosity Verbosity) *model.Report {
	if verbosity != Minimal {
		return r
	}

	stripped := *r
	stripped.ErrorType = dropEvidence(r.ErrorType)
	stripped.ComponentModule = dropEvidence(r.ComponentModule)
	stripped.TriggerReproSteps = dropEvidence(r.TriggerReproSteps)
	stripped.ObservedBehavior = dropEvidence(r.ObservedBehavior)
	stripped.ExpectedBehavior = dropEvidence(r.ExpectedBehavior)
	stripped.Severity = dropOptionalEvidence(r.Severity)
	stripped.Environment = dropOptionalEvidence(r.Environment)
	stripped.FailureClassification = dropOptionalEvidence(r.FailureClassification)
	return &stripped
}

func dropEvidence(f model.Field) model.Field {
	f.RawEvidence = nil
	return f
}

func dropOptionalEvidence(f *model.Field) *model.Field {
	if f == nil {
		return nil
	}
	c := dropEvidence(*f)
	return &c
}
