// Package portfolio computes competency coverage and similarity ranking over a
// user's stored stories. Both operations are advisory: a failing or empty story
// collaborator degrades to an empty-portfolio report rather than an error.
package portfolio

import (
	"context"

	"github.com/jonathan/parfolio/internal/types"
)

// StoryLister is the read-only story collaborator. Implementations fetch all
// stories for a user; results are never cached here.
type StoryLister interface {
	ListStories(ctx context.Context, userID string) ([]types.Story, error)
}

// CoverageReport summarizes how well a portfolio covers the fixed competency vocabulary
type CoverageReport struct {
	TotalStories   int            `json:"total_stories"`
	TagCounts      map[string]int `json:"tag_counts"`
	Gaps           []string       `json:"gaps"`
	WeakCoverage   []string       `json:"weak_coverage"`
	StrongCoverage []string       `json:"strong_coverage"`
	CoverageScore  float64        `json:"coverage_score"`
}

// Coverage thresholds: a tag with one story is weak, three or more is strong.
// Counts of two are adequate and appear in neither bucket.
const (
	weakThreshold   = 1
	strongThreshold = 3
)

// Aggregator computes portfolio-level reports from a story collaborator
type Aggregator struct {
	stories StoryLister
}

// NewAggregator creates an Aggregator backed by the given story collaborator
func NewAggregator(stories StoryLister) *Aggregator {
	return &Aggregator{stories: stories}
}

// Coverage reports story counts per competency tag. Tags outside the fixed
// vocabulary are ignored. A failing collaborator yields an empty portfolio.
func (a *Aggregator) Coverage(ctx context.Context, userID string) CoverageReport {
	stories, err := a.stories.ListStories(ctx, userID)
	if err != nil {
		stories = nil
	}

	counts := make(map[string]int, len(types.CompetencyTags))
	for _, tag := range types.CompetencyTags {
		counts[tag] = 0
	}
	for _, story := range stories {
		for _, tag := range story.Tags {
			if _, ok := counts[tag]; ok {
				counts[tag]++
			}
		}
	}

	// Bucket lists follow the vocabulary order for reproducible output
	gaps := []string{}
	weak := []string{}
	strong := []string{}
	for _, tag := range types.CompetencyTags {
		switch n := counts[tag]; {
		case n == 0:
			gaps = append(gaps, tag)
		case n == weakThreshold:
			weak = append(weak, tag)
		case n >= strongThreshold:
			strong = append(strong, tag)
		}
	}

	total := len(types.CompetencyTags)
	return CoverageReport{
		TotalStories:   len(stories),
		TagCounts:      counts,
		Gaps:           gaps,
		WeakCoverage:   weak,
		StrongCoverage: strong,
		CoverageScore:  float64(total-len(gaps)) / float64(total),
	}
}
