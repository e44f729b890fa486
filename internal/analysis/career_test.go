package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCareerValidator_UnknownStageIsAligned(t *testing.T) {
	v := NewCareerValidator(nil)

	for _, stage := range []string{"", "unknown_stage", "intern"} {
		result := v.Validate("problem", "action", "result", stage)
		assert.True(t, result.Aligned)
		assert.Empty(t, result.Flags)
		assert.Empty(t, result.PositiveSignals)
		assert.Equal(t, 1.0, result.AlignmentScore)
	}
}

func TestCareerValidator_EarlyCareerOverreachFlagged(t *testing.T) {
	v := NewCareerValidator(nil)

	result := v.Validate(
		"Our startup needed direction.",
		"I took company-wide P&L responsibility and transformed the company.",
		"Revenue doubled.",
		"early_career",
	)

	assert.False(t, result.Aligned)
	assert.Contains(t, result.Flags, "company-wide")
	assert.Contains(t, result.Flags, "P&L responsibility")
	assert.Less(t, result.AlignmentScore, 1.0)
}

func TestCareerValidator_EarlyCareerPositiveSignals(t *testing.T) {
	v := NewCareerValidator(nil)

	result := v.Validate(
		"A migration was behind schedule.",
		"I assisted the senior engineer and learned the deployment tooling.",
		"We shipped on time.",
		"early_career",
	)

	assert.True(t, result.Aligned)
	assert.Contains(t, result.PositiveSignals, "assisted")
	assert.Contains(t, result.PositiveSignals, "learned")
	assert.Equal(t, 1.0, result.AlignmentScore)
}

func TestCareerValidator_MidCareerUnderscopeFlagged(t *testing.T) {
	v := NewCareerValidator(nil)

	result := v.Validate(
		"A release was at risk.",
		"I just helped where I could and observed the process.",
		"The release shipped.",
		"mid_career",
	)

	assert.False(t, result.Aligned)
	assert.Contains(t, result.Flags, "just helped")
	assert.Contains(t, result.Flags, "observed")
}

func TestCareerValidator_ScoreDeductionPerFlag(t *testing.T) {
	v := NewCareerValidator(nil)

	one := v.Validate("", "I just helped.", "", "mid_career")
	assert.InDelta(t, 0.7, one.AlignmentScore, 0.001)

	two := v.Validate("", "I just helped and observed.", "", "mid_career")
	assert.InDelta(t, 0.4, two.AlignmentScore, 0.001)
}

func TestCareerValidator_CustomVocabulary(t *testing.T) {
	v := NewCareerValidator(map[string]StageVocabulary{
		"founder": {
			Appropriate: []string{"raised", "pivoted"},
			Flags:       []string{"waited for approval"},
		},
	})

	result := v.Validate("", "I pivoted the product and waited for approval.", "", "founder")
	assert.False(t, result.Aligned)
	assert.Equal(t, []string{"waited for approval"}, result.Flags)
	assert.Equal(t, []string{"pivoted"}, result.PositiveSignals)

	// Built-in stages are not present when a custom map is supplied
	unknown := v.Validate("", "I led the team.", "", "mid_career")
	assert.True(t, unknown.Aligned)
}
