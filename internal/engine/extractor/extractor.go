// Package extractor implements the tiered rule-based extraction engine.
// For each target field it evaluates the registry's strict matchers first
// and falls back to loose ones, picking the single best match per tier.
package extractor

import (
	"log/slog"
	"strings"

	"github.com/crimson-sun/triage/internal/engine/registry"
	"github.com/crimson-sun/triage/internal/model"
)

const (
	// maxValueLen bounds an extracted value; longer values are cut to 997
	// bytes plus the "..." marker.
	maxValueLen = 1000
	// evidenceContext is how many bytes of surrounding text are kept on
	// each side of the matched value.
	evidenceContext = 50
	// fallbackEvidenceLen caps the evidence when the value cannot be
	// located in the text (multi-group joins may not appear verbatim).
	fallbackEvidenceLen = 200
)

// Default occurrence-boost parameters: each repeated occurrence of a matched
// pattern adds Step, capped at Cap. Empirical values, tunable per corpus.
const (
	DefaultBoostStep = 0.1
	DefaultBoostCap  = 0.2
)

// Result is the outcome of one (text, field) extraction attempt. A zero
// Value means no matcher produced a usable match.
type Result struct {
	FieldName  string
	Value      string
	Confidence float64
	Source     model.SourceTier
	Evidence   string
	Pattern    string // expression of the winning matcher, for audits
}

// Matched reports whether the extraction produced a value.
func (r Result) Matched() bool {
	return r.Value != ""
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithOccurrenceBoost overrides the repeated-occurrence confidence boost.
// step is added per extra occurrence; cap bounds the total boost.
func WithOccurrenceBoost(step, cap float64) Option {
	return func(e *Extractor) {
		e.boostStep = step
		e.boostCap = cap
	}
}

// Extractor evaluates registry matchers against input text. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	reg       *registry.Registry
	boostStep float64
	boostCap  float64
}

// New creates an Extractor over the given catalogue.
func New(reg *registry.Registry, opts ...Option) *Extractor {
	e := &Extractor{
		reg:       reg,
		boostStep: DefaultBoostStep,
		boostCap:  DefaultBoostCap,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractField extracts a single field from text. Unknown field names are
/// not an error: they log a warning and return an empty result. The loose
// tier is consulted only when no strict matcher matches.
func (e *Extractor) ExtractField(text, fieldName string) Result {
	fp, ok := e.reg.Field(fieldName)
	if !ok {
		slog.Warn("unknown extraction field", "field", fieldName)
		return Result{FieldName: fieldName}
	}

	if r := e.tryTier(text, fp.Strict, model.TierRegexStrict); r.Matched() {
		r.FieldName = fieldName
		slog.Debug("field extracted", "field", fieldName, "tier", r.Source.String(), "confidence", r.Confidence)
		return r
	}
	if r := e.tryTier(text, fp.Loose, model.TierRegexLoose); r.Matched() {
		r.FieldName = fieldName
		slog.Debug("field extracted", "field", fieldName, "tier", r.Source.String(), "confidence", r.Confidence)
		return r
	}
	return Result{FieldName: fieldName}
}

// ExtractAll runs ExtractField for every field the registry knows. Fields
// are independent, so cross-field order is irrelevant.
func (e *Extractor) ExtractAll(text string) map[string]Result {
	results := make(map[string]Result)
	for _, name := range e.reg.Fields() {
		results[name] = e.ExtractField(text, name)
	}
	return results
}

// tryTier evaluates every matcher in one tier and returns the result with
// the highest adjusted confidence. Ties keep the first-seen matcher.
func (e *Extractor) tryTier(text string, matchers []registry.Matcher, tier model.SourceTier) Result {
	best := Result{Source: tier}

	for _, m := range matchers {
		matches := m.Pattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}

		value := matchValue(m.Pattern.NumSubexp(), matches[0])
		if value == "" {
			continue
		}

		// Corroborating occurrences raise confidence without saturating it.
		boost := e.boostStep * float64(len(matches)-1)
		if boost > e.boostCap {
			boost = e.boostCap
		}
		confidence := m.BaseConfidence + boost
		if confidence > 1.0 {
			confidence = 1.0
		}

		if confidence > best.Confidence {
			best.Value = value
			best.Confidence = confidence
			best.Evidence = evidenceAround(text, value)
			best.Pattern = m.Pattern.String()
		}
	}

	if best.Value != "" && len(best.Value) > maxValueLen {
		best.Value = best.Value[:maxValueLen-3] + "..."
	}
	return best
}

// matchValue builds the extracted value from one regexp match. With capture
// groups, the non-empty groups are joined with a single space; without, the
// whole match is used.
func matchValue(numGroups int, match []string) string {
	if numGroups == 0 {
		return strings.TrimSpace(match[0])
	}
	var parts []string
	for _, g := range match[1:] {
		if g != "" {
			parts = append(parts, g)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// evidenceAround returns the matched value with surrounding context from its
// first occurrence in the text, capped at the model evidence limit.
func evidenceAround(text, value string) string {
	pos := strings.Index(text, value)
	if pos < 0 {
		if len(value) > fallbackEvidenceLen {
			return model.TruncateEvidence(value[:fallbackEvidenceLen])
		}
		return model.TruncateEvidence(value)
	}
	start := pos - evidenceContext
	if start < 0 {
		start = 0
	}
	end := pos + len(value) + evidenceContext
	if end > len(text) {
		end = len(text)
	}
	return model.TruncateEvidence(text[start:end])
}
