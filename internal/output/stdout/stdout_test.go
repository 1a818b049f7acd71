package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/output"
)

func testReport() *model.Report {
	r := model.NewReport(model.SourceMetadata{
		SourceType: model.SourceFreetext,
		SourceID:   "freetext_1",
	})
	r.ErrorType.Set("NullPointerException", 0.95, model.TierRegexStrict,
		"Error: NullPointerException at CartService.java:42")
	r.OverallConfidence = r.CalcOverallConfidence()
	return r
}

// captureStdout redirects os.Stdout to capture output.
func captureStdout(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestOutputCompactJSON(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Standard, false)
		out.Write(context.Background(), testReport())
	})

	// Should be single line (NDJSON).
	lines := strings.Split(strings.TrimSpace(result), "\n")
	require.Len(t, lines, 1)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &m))
	assert.Equal(t, "1.0.0", m["schema_version"])
	field, ok := m["error_type"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NullPointerException", field["value"])
}

func TestOutputPrettyJSON(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Standard, true)
		out.Write(context.Background(), testReport())
	})

	// Pretty JSON should have multiple lines with indentation.
	assert.Contains(t, result, "  ")
	lines := strings.Split(strings.TrimSpace(result), "\n")
	assert.Greater(t, len(lines), 3)
}

func TestOutputMinimalOmitsEvidence(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Minimal, false)
		out.Write(context.Background(), testReport())
	})

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(result)), &m))

	field, ok := m["error_type"].(map[string]any)
	require.True(t, ok)
	_, hasEvidence := field["raw_evidence"]
	assert.False(t, hasEvidence, "raw_evidence should be omitted at Minimal")
	assert.Equal(t, "NullPointerException", field["value"])
	assert.Equal(t, 0.95, field["confidence"])
}
