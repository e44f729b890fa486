package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/parfolio/internal/types"
)

func TestPrintStructure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStructure(&types.PARStructure{
		Title:           "Checkout Latency Fix",
		Problem:         "Checkout was timing out under load",
		Action:          "Profiled the hot path and added caching",
		Result:          "p99 latency dropped 60%",
		ConfidenceScore: 0.85,
		Warnings:        []string{"Result section was inferred"},
	})

	out := buf.String()
	assert.Contains(t, out, "STRUCTURED STORY")
	assert.Contains(t, out, "Checkout Latency Fix")
	assert.Contains(t, out, "0.85")
	assert.Contains(t, out, "Result section was inferred")
}

func TestPrintStructureNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStructure(nil)
	assert.Empty(t, buf.String())
}

func TestPrintTags(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTags([]types.TagAssignment{
		{Tag: "Leadership", Confidence: 0.9, Reasoning: "Led the incident response"},
		{Tag: "Execution", Confidence: 0.7},
	})

	out := buf.String()
	assert.Contains(t, out, "COMPETENCY TAGS")
	assert.Contains(t, out, "Leadership (0.90)")
	assert.Contains(t, out, "Led the incident response")
	assert.Contains(t, out, "Execution (0.70)")
}

func TestPrintCoaching(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCoaching(&types.CoachingResult{
		Strength:   types.CoachingInsight{Overview: "Clear ownership", Detail: "You drove the fix end to end."},
		Gap:        types.CoachingInsight{Overview: "Missing metrics", Detail: "Quantify the before and after."},
		Suggestion: types.CoachingInsight{Overview: "Add a number", Detail: "State the latency improvement."},
	})

	out := buf.String()
	assert.Contains(t, out, "COACHING INSIGHTS")
	assert.Contains(t, out, "Strength: Clear ownership")
	assert.Contains(t, out, "Gap: Missing metrics")
	assert.Contains(t, out, "Suggestion: Add a number")
}

func TestPrintStories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	stories := make([]types.Story, 7)
	for i := range stories {
		stories[i] = types.Story{Title: "Story", Tags: []string{"Impact"}}
	}
	p.PrintStories(stories)

	out := buf.String()
	assert.Contains(t, out, "Total stories: 7")
	assert.Contains(t, out, "... and 2 more stories")
	assert.Contains(t, out, "Tags: Impact")
}

func TestPrintStoriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStories(nil)
	assert.Contains(t, buf.String(), "No stories saved yet")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWarnings([]string{"Behavioral tagging failed: timeout"})
	assert.Contains(t, buf.String(), "Found 1 warnings")
	assert.Contains(t, buf.String(), "tagging failed")

	buf.Reset()
	p.PrintWarnings(nil)
	assert.Contains(t, buf.String(), "NO WARNINGS")
}

func TestLongLinesTruncatedToBoxWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStructure(&types.PARStructure{
		Title:   strings.Repeat("x", 120),
		Problem: "p", Action: "a", Result: "r",
	})

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}
