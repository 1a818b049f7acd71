package output

import (
	"context"
	"fmt"
	"strings"

	"github.com/crimson-sun/triage/internal/model"
)

// Output defines the interface for normalized report destinations.
type Output interface {
	Write(ctx context.Context, r *model.Report) error
	Close() error
}

// Verbosity controls how much of each report reaches the destination.
type Verbosity int

const (
	// Minimal strips raw evidence excerpts from every field.
	Minimal Verbosity = iota
	// Standard keeps the full canonical record.
	Standard
	// Full is Standard plus anything destinations choose to add.
	Full
)

// ParseVerbosity converts a config string to a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(s) {
	case "minimal":
		return Minimal, nil
	case "standard":
		return Standard, nil
	case "full":
		return Full, nil
	default:
		return Standard, fmt.Errorf("output: unknown verbosity: %s", s)
	}
}
