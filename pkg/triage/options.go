package triage

import (
	"fmt"
	"regexp"

	"github.com/crimson-sun/triage/internal/engine/registry"
	"github.com/crimson-sun/triage/internal/model"
)

// Matcher is one extraction pattern. Pattern must be a valid Go regular
// expression; the first capture group (or the whole match when there are no
// groups) becomes the field value.
type Matcher struct {
	Pattern    string
	Confidence float64
}

// FieldPatterns holds the strict and loose matchers for one field.
type FieldPatterns struct {
	Strict []Matcher
	Loose  []Matcher
}

type options struct {
	patternVersion string
	patterns       map[string]FieldPatterns
	enrichment     string
	modelPath      string
	vocabPath      string
	threshold      float64
}

// Option configures a Triage instance.
type Option func(*options)

// WithPatterns replaces the built-in pattern registry. The map keys are the
// five mandatory field names; fields left out simply never match.
func WithPatterns(version string, patterns map[string]FieldPatterns) Option {
	return func(o *options) {
		o.patternVersion = version
		o.patterns = patterns
	}
}

// WithHeuristicEnrichment fills low-confidence fields by rules derived from
// the fields that did extract. No model files required.
func WithHeuristicEnrichment() Option {
	return func(o *options) {
		o.enrichment = "heuristic"
	}
}

// WithSemanticEnrichment fills low-confidence fields by embedding candidate
// sentences with an ONNX model. Expects a sentence-transformer model file
// and its WordPiece vocabulary.
func WithSemanticEnrichment(modelPath, vocabPath string) Option {
	return func(o *options) {
		o.enrichment = "semantic"
		o.modelPath = modelPath
		o.vocabPath = vocabPath
	}
}

// WithEnrichmentThreshold sets the confidence below which a field is
// considered missing and eligible for enrichment. Default: 0.5.
func WithEnrichmentThreshold(t float64) Option {
	return func(o *options) {
		o.threshold = t
	}
}

func defaultOptions() options {
	return options{
		threshold: model.ThresholdMedium,
	}
}

// buildRegistry compiles the configured patterns, or returns the built-in
// registry when none were supplied.
func buildRegistry(o options) (*registry.Registry, error) {
	if o.patterns == nil {
		return registry.Default(), nil
	}

	fields := make(map[string]registry.FieldPatterns, len(o.patterns))
	for name, fp := range o.patterns {
		strict, err := compileMatchers(fp.Strict)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		loose, err := compileMatchers(fp.Loose)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		fields[name] = registry.FieldPatterns{Strict: strict, Loose: loose}
	}
	return registry.New(o.patternVersion, fields), nil
}

func compileMatchers(ms []Matcher) ([]registry.Matcher, error) {
	out := make([]registry.Matcher, 0, len(ms))
	for _, m := range ms {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, registry.Matcher{Pattern: re, BaseConfidence: m.Confidence})
	}
	return out, nil
}
