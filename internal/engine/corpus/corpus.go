// Package corpus embeds a labeled set of bug reports used to validate the
// extraction catalogue. Pattern changes that regress a labeled field fail
// the corpus test.
package corpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// Entry is one labeled bug report. An empty expected value means the field
// must stay unfilled for that input.
type Entry struct {
	Text              string `json:"text"`
	ExpectedErrorType string `json:"expected_error_type"`
	ExpectedComponent string `json:"expected_component"`
	Description       string `json:"description"`
}

// Load parses the embedded corpus.json and returns all entries.
func Load() ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
