// Package ingest turns raw bug report sources into extraction-ready text
// plus source metadata. Handlers register themselves by source type name.
package ingest

import (
	"context"
	"fmt"

	"github.com/crimson-sun/triage/internal/model"
)

// Handler converts one kind of source into raw text and metadata. The
// source argument is handler-specific: the text itself for freetext, a
// file path for logfile, a JSON payload for workitem.
type Handler interface {
	Ingest(ctx context.Context, source string) (string, model.SourceMetadata, error)
}

// Constructor is a function that creates a new Handler instance.
type Constructor func() Handler

var registry = map[string]Constructor{}

// Register adds a handler constructor under the given source type name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the handler constructor for the given source type name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s", name)
	}
	return ctor, nil
}

// SourceTypes returns the names of all registered handlers.
func SourceTypes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
