package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	sampleProblem = `Our e-commerce platform was experiencing a 40% cart abandonment rate,
significantly higher than the industry average of 25%. This was costing us an estimated
$2M in lost revenue per quarter.`

	sampleAction = `I led a cross-functional team of 5 engineers and 2 designers to
diagnose the issue. I conducted user research with 50 customers, analyzed funnel data,
and identified that the checkout process had 7 unnecessary steps. I then designed and
implemented a streamlined 3-step checkout flow, personally writing the frontend React
components and coordinating backend API changes.`

	sampleResult = `The new checkout flow reduced cart abandonment from 40% to 22%,
below industry average. This translated to $1.2M in recovered revenue per quarter.
The project was completed 2 weeks ahead of schedule and received recognition from the CEO.`

	weakProblem = "There was a problem with the system."

	weakAction = `We worked on fixing it. The team was assigned to improve things.
We were able to complete the work. Our team did a lot of work together.`

	weakResult = `Things improved significantly. We helped a lot.
The results were positive and made things better.`
)

func findingTypes(issues []StorytellingFinding) []FindingType {
	out := make([]FindingType, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Type)
	}
	return out
}

func TestAnalyzeStorytelling_StrongStoryHasNoIssues(t *testing.T) {
	result := AnalyzeStorytelling(sampleProblem, sampleAction, sampleResult)

	assert.NotContains(t, findingTypes(result.Issues), FindingWeInsteadOfI)
	assert.NotContains(t, findingTypes(result.Issues), FindingVagueResults)
	assert.True(t, result.HasQuantifiedResults)
	assert.GreaterOrEqual(t, result.QualityScore, 0.75)
}

func TestAnalyzeStorytelling_WeLanguageDetected(t *testing.T) {
	result := AnalyzeStorytelling(weakProblem, weakAction, weakResult)

	assert.Contains(t, findingTypes(result.Issues), FindingWeInsteadOfI)
}

func TestAnalyzeStorytelling_WeLanguageOnlyInActionSection(t *testing.T) {
	// "We" language in the problem section does not count
	result := AnalyzeStorytelling(
		"We were able to see the system failing.",
		"I diagnosed the failure and I rewrote the scheduler.",
		"Latency dropped by 300ms.",
	)

	assert.NotContains(t, findingTypes(result.Issues), FindingWeInsteadOfI)
}

func TestAnalyzeStorytelling_VagueResultsDetected(t *testing.T) {
	result := AnalyzeStorytelling(sampleProblem, sampleAction, weakResult)

	assert.Contains(t, findingTypes(result.Issues), FindingVagueResults)
	assert.False(t, result.HasQuantifiedResults)
}

func TestAnalyzeStorytelling_QuantifiedImprovementNotVague(t *testing.T) {
	result := AnalyzeStorytelling(sampleProblem, sampleAction, "We reduced costs by 30% across the platform.")

	assert.NotContains(t, findingTypes(result.Issues), FindingVagueResults)
	assert.True(t, result.HasQuantifiedResults)
}

func TestAnalyzeStorytelling_UnquantifiedImprovementIsVague(t *testing.T) {
	result := AnalyzeStorytelling(sampleProblem, sampleAction, "We reduced costs across the platform.")

	assert.Contains(t, findingTypes(result.Issues), FindingVagueResults)
}

func TestAnalyzeStorytelling_PassiveVoiceSeverity(t *testing.T) {
	passive := "The system was designed by the team. The rollout was planned. The budget was approved. " +
		"Metrics were tracked. Reports were generated."
	result := AnalyzeStorytelling(passive, passive, "Revenue grew 12%.")

	var passiveFinding *StorytellingFinding
	for i := range result.Issues {
		if result.Issues[i].Type == FindingPassiveVoice {
			passiveFinding = &result.Issues[i]
		}
	}
	if assert.NotNil(t, passiveFinding) {
		assert.Equal(t, SeverityHigh, passiveFinding.Severity)
	}
}

func TestAnalyzeStorytelling_EmptyInputScoresPerfect(t *testing.T) {
	result := AnalyzeStorytelling("", "", "")

	assert.Empty(t, result.Issues)
	assert.False(t, result.HasQuantifiedResults)
	assert.Equal(t, 1.0, result.QualityScore)
}

func TestAnalyzeStorytelling_FindingOrderIsFixed(t *testing.T) {
	passive := "The system was designed. The rollout was planned. The budget was approved. Reports were generated."
	result := AnalyzeStorytelling(passive, "We were able to ship it.", "Things improved significantly.")

	assert.Equal(t,
		[]FindingType{FindingPassiveVoice, FindingWeInsteadOfI, FindingVagueResults},
		findingTypes(result.Issues))
}

func TestAnalyzeStorytelling_ScoreIsMonotonicNonIncreasing(t *testing.T) {
	// Appending weak-pattern sentences must never raise the score
	action := "I rebuilt the ingestion service."
	result := "Throughput rose 40%."

	prev := AnalyzeStorytelling("A pipeline stalled.", action, result).QualityScore
	weakSentences := []string{
		" We were able to ship it.",
		" We were able to ship it faster.",
	}
	weakResults := []string{
		" Things improved significantly.",
		" It helped a lot.",
	}
	for i := range weakSentences {
		action += weakSentences[i]
		result += weakResults[i]
		score := AnalyzeStorytelling("A pipeline stalled.", action, result).QualityScore
		assert.LessOrEqual(t, score, prev)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		prev = score
	}
}

func TestAnalyzeStorytelling_EndToEndWeakTriple(t *testing.T) {
	result := AnalyzeStorytelling(
		"There was a problem.",
		"We worked on it. We were able to fix it.",
		"Things improved significantly.",
	)

	got := findingTypes(result.Issues)
	assert.Contains(t, got, FindingWeInsteadOfI)
	assert.Contains(t, got, FindingVagueResults)
	assert.False(t, result.HasQuantifiedResults)
	assert.LessOrEqual(t, result.QualityScore, 0.5)
}

func TestAnalyzeStorytelling_ScoreFloorAtZero(t *testing.T) {
	passive := strings.Repeat("The work was completed. ", 5)
	result := AnalyzeStorytelling(passive, "We were able to do it.", "It helped a lot. We saved time.")

	assert.GreaterOrEqual(t, result.QualityScore, 0.0)
}
