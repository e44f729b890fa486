package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/parfolio/internal/types"
)

// fakeLister is an in-memory StoryLister for tests
type fakeLister struct {
	stories []types.Story
	err     error
}

func (f *fakeLister) ListStories(_ context.Context, _ string) ([]types.Story, error) {
	return f.stories, f.err
}

func testStories() []types.Story {
	return []types.Story{
		{ID: "s1", Title: "Checkout rebuild", Tags: []string{"Leadership", "Impact"}},
		{ID: "s2", Title: "Incident response", Tags: []string{"Leadership", "Execution"}},
		{ID: "s3", Title: "Pricing experiment", Tags: []string{"Leadership", "Innovation"}},
		{ID: "s4", Title: "Hiring pipeline", Tags: []string{"Communication"}},
		{ID: "s5", Title: "Legacy migration", Tags: []string{"Impact", "NotARealTag"}},
	}
}

func TestCoverage_TagCountsMatchMultiset(t *testing.T) {
	agg := NewAggregator(&fakeLister{stories: testStories()})

	report := agg.Coverage(context.Background(), "user-1")

	assert.Equal(t, 5, report.TotalStories)
	assert.Equal(t, 3, report.TagCounts["Leadership"])
	assert.Equal(t, 2, report.TagCounts["Impact"])
	assert.Equal(t, 1, report.TagCounts["Communication"])
	assert.Equal(t, 0, report.TagCounts["Failure"])

	// Sum of counts equals the number of in-vocabulary tag occurrences
	total := 0
	for _, n := range report.TagCounts {
		total += n
	}
	expected := 0
	for _, story := range testStories() {
		for _, tag := range story.Tags {
			if types.IsCompetencyTag(tag) {
				expected++
			}
		}
	}
	assert.Equal(t, expected, total)
}

func TestCoverage_Buckets(t *testing.T) {
	agg := NewAggregator(&fakeLister{stories: testStories()})

	report := agg.Coverage(context.Background(), "user-1")

	assert.Contains(t, report.StrongCoverage, "Leadership")
	assert.Contains(t, report.WeakCoverage, "Communication")
	assert.Contains(t, report.WeakCoverage, "Execution")
	assert.Contains(t, report.Gaps, "Failure")
	// Impact has 2 stories: adequate, in neither bucket
	assert.NotContains(t, report.WeakCoverage, "Impact")
	assert.NotContains(t, report.StrongCoverage, "Impact")
	assert.NotContains(t, report.Gaps, "Impact")
}

func TestCoverage_ScoreFormula(t *testing.T) {
	agg := NewAggregator(&fakeLister{stories: testStories()})

	report := agg.Coverage(context.Background(), "user-1")

	expected := float64(len(types.CompetencyTags)-len(report.Gaps)) / float64(len(types.CompetencyTags))
	assert.InDelta(t, expected, report.CoverageScore, 0.001)
}

func TestCoverage_UnknownTagsIgnored(t *testing.T) {
	agg := NewAggregator(&fakeLister{stories: []types.Story{
		{ID: "s1", Tags: []string{"Quantum Vibes", "Leadership"}},
	}})

	report := agg.Coverage(context.Background(), "user-1")

	assert.Equal(t, 1, report.TagCounts["Leadership"])
	assert.NotContains(t, report.TagCounts, "Quantum Vibes")
}

func TestCoverage_EmptyPortfolio(t *testing.T) {
	agg := NewAggregator(&fakeLister{})

	report := agg.Coverage(context.Background(), "user-1")

	assert.Equal(t, 0, report.TotalStories)
	assert.Len(t, report.Gaps, len(types.CompetencyTags))
	assert.Equal(t, 0.0, report.CoverageScore)
}

func TestCoverage_CollaboratorFailureDegradesToEmpty(t *testing.T) {
	agg := NewAggregator(&fakeLister{err: errors.New("firestore is down")})

	report := agg.Coverage(context.Background(), "user-1")

	assert.Equal(t, 0, report.TotalStories)
	assert.Len(t, report.Gaps, len(types.CompetencyTags))
	assert.Equal(t, 0.0, report.CoverageScore)
}
