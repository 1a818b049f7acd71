package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/triage/internal/model"
)

func baseReport() *model.Report {
	r := model.NewReport(model.SourceMetadata{
		SourceType: model.SourceFreetext,
		SourceID:   "freetext_1",
	})
	r.ErrorType.Set("NullPointerException", 0.95, model.TierRegexStrict,
		"Error: NullPointerException at CartService.java:42")
	r.ComponentModule.Set("CartService", 0.81, model.TierRegexStrict,
		"at com.shop.CartService.checkout")
	sev := model.NewField("high", 0.85, model.TierRuleBased, "Severity: high")
	r.Severity = &sev
	return r
}

func TestFormatReportMinimal(t *testing.T) {
	r := baseReport()
	formatted := FormatReport(r, Minimal)

	assert.Nil(t, formatted.ErrorType.RawEvidence)
	assert.Nil(t, formatted.ComponentModule.RawEvidence)
	require.NotNil(t, formatted.Severity)
	assert.Nil(t, formatted.Severity.RawEvidence)

	// Values and confidences survive.
	assert.Equal(t, "NullPointerException", *formatted.ErrorType.Value)
	assert.Equal(t, 0.95, formatted.ErrorType.Confidence)

	// The original report is untouched.
	assert.NotNil(t, r.ErrorType.RawEvidence)
	assert.NotNil(t, r.Severity.RawEvidence)
}

func TestFormatReportStandard(t *testing.T) {
	r := baseReport()
	formatted := FormatReport(r, Standard)

	assert.Same(t, r, formatted)
	assert.NotNil(t, formatted.ErrorType.RawEvidence)
}

func TestFormatReportFull(t *testing.T) {
	r := baseReport()
	formatted := FormatReport(r, Full)

	assert.Same(t, r, formatted)
	assert.NotNil(t, formatted.ErrorType.RawEvidence)
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		in      string
		want    Verbosity
		wantErr bool
	}{
		{"minimal", Minimal, false},
		{"standard", Standard, false},
		{"FULL", Full, false},
		{"loud", Standard, true},
		{"", Standard, true},
	}
	for _, tt := range tests {
		got, err := ParseVerbosity(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
