// Package scorer turns raw extraction confidence into final per-field
// scores and computes record-level aggregates. All operations are pure.
package scorer

import (
	"math"

	"github.com/crimson-sun/triage/internal/model"
)

// Default adjustment parameters. Like the extractor's occurrence boost,
// these are empirical calibration values, not invariants.
const (
	DefaultEvidenceBonus     = 0.05
	DefaultShortValuePenalty = 0.8
	DefaultShortValueMaxLen  = 4
)

// Scorer applies source-reliability weighting and evidence/length
// adjustments to extraction confidence. The zero value is not usable;
// call New.
type Scorer struct {
	evidenceBonus     float64
	shortValuePenalty float64
	shortValueMaxLen  int
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithEvidenceBonus overrides the flat bonus applied when evidence exists.
func WithEvidenceBonus(b float64) Option {
	return func(s *Scorer) { s.evidenceBonus = b }
}

// WithShortValuePenalty overrides the multiplier applied to values of
// length 1..maxLen, which are likely truncated or noise matches.
func WithShortValuePenalty(penalty float64, maxLen int) Option {
	return func(s *Scorer) {
		s.shortValuePenalty = penalty
		s.shortValueMaxLen = maxLen
	}
}

// New creates a Scorer with default adjustment parameters.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		evidenceBonus:     DefaultEvidenceBonus,
		shortValuePenalty: DefaultShortValuePenalty,
		shortValueMaxLen:  DefaultShortValueMaxLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sourceWeight returns the reliability multiplier for a tier. The switch is
// exhaustive over the closed SourceTier set.
func sourceWeight(tier model.SourceTier) float64 {
	switch tier {
	case model.TierWorkItemAPI:
		return 1.0
	case model.TierRegexStrict:
		return 0.95
	case model.TierRuleBased:
		return 0.85
	case model.TierRegexLoose:
		return 0.70
	case model.TierUserProvided:
		return 0.60
	case model.TierEnriched:
		return 0.50
	default:
		return 0.50
	}
}

// ScoreField computes the final confidence for one field: base confidence
// weighted by source reliability, plus a capped bonus for evidence, times a
// penalty for suspiciously short values. Result is rounded to 3 decimals
// and always within [0,1].
func (s *Scorer) ScoreField(baseConfidence float64, tier model.SourceTier, hasEvidence bool, valueLength int) float64 {
	confidence := baseConfidence * sourceWeight(tier)

	if hasEvidence {
		confidence = math.Min(confidence+s.evidenceBonus, 1.0)
	}

	if valueLength > 0 && valueLength <= s.shortValueMaxLen {
		confidence *= s.shortValuePenalty
	}

	confidence = math.Round(confidence*1000) / 1000
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// Completeness returns the fraction of mandatory fields holding a value.
// It is a structural signal, independent of per-field confidence.
func (s *Scorer) Completeness(r *model.Report) float64 {
	filled := 0
	for _, f := range r.CoreFields() {
		if f.Filled() {
			filled++
		}
	}
	return float64(filled) / float64(model.CoreFieldCount)
}

// ShouldEnrich reports whether a field's confidence is strictly below the
// enrichment threshold. This is the sole gate enrichment must honor.
func (s *Scorer) ShouldEnrich(confidence, threshold float64) bool {
	if threshold == 0 {
		threshold = model.ThresholdMedium
	}
	return confidence < threshold
}
