// Package registry holds the versioned catalogue of extraction matchers.
// The catalogue is immutable once built and safe for unsynchronized
// concurrent reads; it is constructed explicitly and injected into the
// extractor so tests can substitute fixture catalogues.
package registry

import (
	"regexp"
	"sort"
)

// Matcher pairs a compiled pattern with its base confidence weight.
// Patterns are compiled with regexp.MustCompile at catalogue construction,
// so a malformed pattern aborts startup instead of failing per call.
type Matcher struct {
	Pattern        *regexp.Regexp
	BaseConfidence float64
}

// FieldPatterns is the ordered matcher set for one target field. Within a
// tier, order matters only for tie-breaking: the first matcher to reach the
// best adjusted confidence wins.
type FieldPatterns struct {
	Strict []Matcher
	Loose  []Matcher
}

// Registry is the immutable, versioned matcher catalogue keyed by field.
type Registry struct {
	version string
	fields  map[string]FieldPatterns
}

// New builds a Registry from an explicit field -> patterns mapping. The
// version string identifies the matcher set for reproducibility audits.
func New(version string, fields map[string]FieldPatterns) *Registry {
	copied := make(map[string]FieldPatterns, len(fields))
	for name, fp := range fields {
		copied[name] = fp
	}
	return &Registry{version: version, fields: copied}
}

// Version returns the catalogue version string.
func (r *Registry) Version() string {
	return r.version
}

// Field returns the matcher set for the given field name.
func (r *Registry) Field(name string) (FieldPatterns, bool) {
	fp, ok := r.fields[name]
	return fp, ok
}

// Fields returns all known field names, sorted for deterministic iteration.
func (r *Registry) Fields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matcher is a construction helper for the default catalogue.
func matcher(pattern string, base float64) Matcher {
	return Matcher{Pattern: regexp.MustCompile(pattern), BaseConfidence: base}
}
