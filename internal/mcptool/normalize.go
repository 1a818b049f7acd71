package mcptool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crimson-sun/triage/pkg/triage"
)

// metadataNormalizeBugReport describes the normalize_bug_report tool.
var metadataNormalizeBugReport = &mcp.Tool{
	Name: "normalize_bug_report",
	Description: "Extract structured fields from an unstructured bug report or log excerpt. " +
		"Returns a normalized record with error type, component, reproduction steps, observed " +
		"and expected behavior, each with a confidence score and the tier of the matcher that " +
		"produced it. Fields with level \"low\" should be reviewed by a human before filing.",
}

// normalizeBugReportInput is the input for the normalize_bug_report tool.
type normalizeBugReportInput struct {
	Text string `json:"text" jsonschema:"required,Raw bug report text to normalize"`
}

// normalizeBugReportOutput is the output for the normalize_bug_report tool.
type normalizeBugReportOutput struct {
	Report triage.Report `json:"report"`
}

func (s *Server) normalizeBugReport(_ context.Context, _ *mcp.CallToolRequest, input normalizeBugReportInput) (*mcp.CallToolResult, normalizeBugReportOutput, error) {
	if input.Text == "" {
		return nil, normalizeBugReportOutput{}, fmt.Errorf("text is required")
	}

	r, err := s.triage.Process(input.Text)
	if err != nil {
		return nil, normalizeBugReportOutput{}, err
	}
	return nil, normalizeBugReportOutput{Report: r}, nil
}

// metadataNormalizeWorkItem describes the normalize_work_item tool.
var metadataNormalizeWorkItem = &mcp.Tool{
	Name: "normalize_work_item",
	Description: "Extract structured fields from a work item JSON payload as returned by a " +
		"tracker API. The payload's title, description, repro steps, and acceptance criteria " +
		"are combined before extraction. Returns the same normalized record as " +
		"normalize_bug_report.",
}

// normalizeWorkItemInput is the input for the normalize_work_item tool.
type normalizeWorkItemInput struct {
	Payload string `json:"payload" jsonschema:"required,Work item JSON payload"`
}

func (s *Server) normalizeWorkItem(_ context.Context, _ *mcp.CallToolRequest, input normalizeWorkItemInput) (*mcp.CallToolResult, normalizeBugReportOutput, error) {
	if input.Payload == "" {
		return nil, normalizeBugReportOutput{}, fmt.Errorf("payload is required")
	}

	r, err := s.triage.ProcessWorkItem(input.Payload)
	if err != nil {
		return nil, normalizeBugReportOutput{}, err
	}
	return nil, normalizeBugReportOutput{Report: r}, nil
}
