package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(conf float64) Field {
	return NewField("some value", conf, TierRegexStrict, "evidence")
}

func TestCalcOverallConfidence_AllEmpty(t *testing.T) {
	r := NewReport(SourceMetadata{SourceType: SourceFreetext, SourceID: "t"})
	assert.Equal(t, 0.0, r.CalcOverallConfidence())
}

func TestCalcOverallConfidence_CompletenessPenalty(t *testing.T) {
	tests := []struct {
		name   string
		set    map[string]float64 // field name -> confidence
		expect float64
	}{
		{
			name:   "single perfect field",
			set:    map[string]float64{"error_type": 1.0},
			expect: 1.0 * (1.0 / 5.0),
		},
		{
			name: "three of five",
			set: map[string]float64{
				"error_type":        0.9,
				"component_module":  0.6,
				"observed_behavior": 0.3,
			},
			expect: (0.9 + 0.6 + 0.3) / 3 * (3.0 / 5.0),
		},
		{
			name: "all five high",
			set: map[string]float64{
				"error_type":          0.9,
				"component_module":    0.9,
				"trigger_repro_steps": 0.9,
				"observed_behavior":   0.9,
				"expected_behavior":   0.9,
			},
			expect: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport(SourceMetadata{SourceType: SourceFreetext, SourceID: "t"})
			for name, conf := range tt.set {
				*r.CoreField(name) = filled(conf)
			}
			assert.InDelta(t, tt.expect, r.CalcOverallConfidence(), 1e-9)
			assert.GreaterOrEqual(t, r.CalcOverallConfidence(), 0.0)
			assert.LessOrEqual(t, r.CalcOverallConfidence(), 1.0)
		})
	}
}

func TestLowConfidenceFields(t *testing.T) {
	r := NewReport(SourceMetadata{SourceType: SourceFreetext, SourceID: "t"})
	*r.CoreField("error_type") = filled(0.95)
	*r.CoreField("component_module") = filled(0.3)

	low := r.LowConfidenceFields(0.5)
	assert.NotContains(t, low, "error_type")
	assert.Contains(t, low, "component_module") // below threshold
	assert.Contains(t, low, "trigger_repro_steps")
	assert.Contains(t, low, "observed_behavior")
	assert.Contains(t, low, "expected_behavior")

	// Exactly at threshold does not qualify (strictly below).
	*r.CoreField("component_module") = filled(0.5)
	assert.NotContains(t, r.LowConfidenceFields(0.5), "component_module")
}

func TestTruncateEvidence(t *testing.T) {
	long := strings.Repeat("x", 1200)
	got := TruncateEvidence(long)
	require.Len(t, got, MaxEvidenceLen)
	assert.True(t, strings.HasSuffix(got, "..."))

	short := "fits as is"
	assert.Equal(t, short, TruncateEvidence(short))

	exact := strings.Repeat("y", MaxEvidenceLen)
	assert.Equal(t, exact, TruncateEvidence(exact))
}

func TestNewFieldClampsConfidence(t *testing.T) {
	f := NewField("v", 1.7, TierRegexStrict, "")
	assert.Equal(t, 1.0, f.Confidence)

	f = NewField("v", -0.2, TierRegexStrict, "")
	assert.Equal(t, 0.0, f.Confidence)
}

func TestConfidenceLevels(t *testing.T) {
	assert.Equal(t, LevelHigh, ClassifyConfidence(0.8))
	assert.Equal(t, LevelMedium, ClassifyConfidence(0.5))
	assert.Equal(t, LevelMedium, ClassifyConfidence(0.79))
	assert.Equal(t, LevelLow, ClassifyConfidence(0.49))
	assert.Equal(t, LevelLow, ClassifyConfidence(0))
}

func TestSourceTierJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(TierRegexStrict)
	require.NoError(t, err)
	assert.Equal(t, `"regex_strict"`, string(data))

	var tier SourceTier
	require.NoError(t, json.Unmarshal([]byte(`"nlp_enriched"`), &tier))
	assert.Equal(t, TierEnriched, tier)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &tier))
}

func TestReportJSONFieldNames(t *testing.T) {
	r := NewReport(SourceMetadata{SourceType: SourceLogFile, SourceID: "log-1"})
	*r.CoreField("error_type") = filled(0.9)
	r.OverallConfidence = r.CalcOverallConfidence()

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{
		"bug_id", "schema_version", "source_metadata",
		"error_type", "component_module", "trigger_repro_steps",
		"observed_behavior", "expected_behavior",
		"overall_confidence", "fields_extracted_by_regex",
		"fields_enriched_by_nlp", "total_extractable_fields",
		"processing_timestamp", "nlp_enrichment_applied",
	} {
		assert.Contains(t, decoded, key)
	}

	// Undetected fields serialize with an explicit null value.
	comp := decoded["component_module"].(map[string]any)
	assert.Nil(t, comp["value"])
}
