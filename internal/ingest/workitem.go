package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/crimson-sun/triage/internal/model"
)

// Work item field reference names carried over from the Azure DevOps REST
// API payloads this handler consumes.
const (
	fieldTitle              = "System.Title"
	fieldDescription        = "System.Description"
	fieldReproSteps         = "Microsoft.VSTS.TCM.ReproSteps"
	fieldAcceptanceCriteria = "Microsoft.VSTS.Common.AcceptanceCriteria"
)

func init() {
	Register(model.SourceWorkItem, func() Handler {
		return &WorkItem{}
	})
}

// WorkItem handles bug work items fetched from a work tracking API. The
// source is the work item response JSON.
type WorkItem struct{}

type workItemPayload struct {
	ID     json.Number    `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Ingest formats the work item's text fields into a structured description
// and strips embedded HTML.
func (h *WorkItem) Ingest(_ context.Context, source string) (string, model.SourceMetadata, error) {
	var payload workItemPayload
	if err := json.Unmarshal([]byte(source), &payload); err != nil {
		return "", model.SourceMetadata{}, fmt.Errorf("ingest: parsing work item: %w", err)
	}

	id := payload.ID.String()
	if id == "" {
		id = "unknown"
	}

	var parts []string
	for _, section := range []struct {
		label string
		field string
	}{
		{"Title", fieldTitle},
		{"\nDescription", fieldDescription},
		{"\nReproduction Steps", fieldReproSteps},
		{"\nExpected Behavior", fieldAcceptanceCriteria},
	} {
		if v := stringField(payload.Fields, section.field); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", section.label, v))
		}
	}

	text := stripHTML(strings.Join(parts, "\n"))

	meta := model.SourceMetadata{
		SourceType:    model.SourceWorkItem,
		SourceID:      "workitem_" + id,
		IngestedAt:    time.Now().UTC(),
		WorkItemID:    id,
		RawTextLength: len(text),
	}
	return text, meta, nil
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// stripHTML drops tags and decodes the entities commonly present in rich
// text work item fields.
func stripHTML(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	return strings.TrimSpace(text)
}
