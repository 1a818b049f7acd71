package model

import "time"

// MaxEvidenceLen bounds the raw_evidence string on every field. Longer
// evidence is cut to 497 bytes plus the "..." marker so the stored string is
// exactly MaxEvidenceLen long.
const MaxEvidenceLen = 500

// Field is a single extracted value with its confidence metadata. A nil
// Value means the field was not detected.
type Field struct {
	Value       *string    `json:"value"`
	Confidence  float64    `json:"confidence"`
	Source      SourceTier `json:"source"`
	RawEvidence *string    `json:"raw_evidence,omitempty"`
	ExtractedAt time.Time  `json:"extraction_timestamp"`
}

// NewField builds a filled field, clamping confidence to [0,1] and
// truncating evidence to MaxEvidenceLen.
func NewField(value string, confidence float64, source SourceTier, evidence string) Field {
	f := Field{
		Value:       &value,
		Confidence:  clamp01(confidence),
		Source:      source,
		ExtractedAt: time.Now().UTC(),
	}
	if evidence != "" {
		ev := TruncateEvidence(evidence)
		f.RawEvidence = &ev
	}
	return f
}

// EmptyField is the zero-confidence placeholder for an undetected field.
func EmptyField() Field {
	return Field{
		Confidence:  0,
		Source:      TierRegexLoose,
		ExtractedAt: time.Now().UTC(),
	}
}

// Filled reports whether the field holds a value.
func (f Field) Filled() bool {
	return f.Value != nil
}

// Level returns the discrete confidence classification of the field.
func (f Field) Level() ConfidenceLevel {
	return ClassifyConfidence(f.Confidence)
}

// Set overwrites the field in place. Callers are expected to have checked
// the low-confidence gate first; Set itself does not authorize writes.
func (f *Field) Set(value string, confidence float64, source SourceTier, evidence string) {
	*f = NewField(value, confidence, source, evidence)
}

// TruncateEvidence caps an evidence string at MaxEvidenceLen, replacing the
// tail with "..." when it is cut.
func TruncateEvidence(s string) string {
	if len(s) <= MaxEvidenceLen {
		return s
	}
	return s[:MaxEvidenceLen-3] + "..."
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
