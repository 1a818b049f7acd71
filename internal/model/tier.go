package model

import (
	"encoding/json"
	"fmt"
)

// SourceTier identifies how a field value was obtained. The constants are
// ordered from most to least reliable; the scorer's weight table keys on
// this type so the switch stays exhaustive.
type SourceTier int

const (
	TierWorkItemAPI SourceTier = iota // structured field from a tracker API
	TierRegexStrict                   // high-precision pattern match
	TierRuleBased                     // derived by a non-regex rule
	TierRegexLoose                    // high-recall pattern match
	TierUserProvided                  // supplied directly by a user
	TierEnriched                      // filled by the enrichment collaborator
)

var tierNames = map[SourceTier]string{
	TierWorkItemAPI:  "workitem_api",
	TierRegexStrict:  "regex_strict",
	TierRuleBased:    "rule_based",
	TierRegexLoose:   "regex_loose",
	TierUserProvided: "user_provided",
	TierEnriched:     "nlp_enriched",
}

func (t SourceTier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown_tier_%d", int(t))
}

// MarshalJSON encodes the tier as its stable wire name.
func (t SourceTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a tier from its wire name.
func (t *SourceTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for tier, name := range tierNames {
		if name == s {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("model: unknown source tier %q", s)
}

// ConfidenceLevel is the discrete classification of a confidence score.
type ConfidenceLevel string

const (
	LevelHigh   ConfidenceLevel = "high"   // >= ThresholdHigh
	LevelMedium ConfidenceLevel = "medium" // >= ThresholdMedium
	LevelLow    ConfidenceLevel = "low"
)

// Shared classification boundaries, used both for field-level confidence
// levels and by the scorer's enrichment gate.
const (
	ThresholdHigh   = 0.8
	ThresholdMedium = 0.5
)

// ClassifyConfidence maps a score to its discrete level.
func ClassifyConfidence(c float64) ConfidenceLevel {
	switch {
	case c >= ThresholdHigh:
		return LevelHigh
	case c >= ThresholdMedium:
		return LevelMedium
	default:
		return LevelLow
	}
}
