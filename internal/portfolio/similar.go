package portfolio

import (
	"context"
	"sort"
	"strings"

	"github.com/jonathan/parfolio/internal/types"
)

// SimilarityQuery describes what to match stories against. Each signal only
// contributes to the score when its field is supplied.
type SimilarityQuery struct {
	Title   string
	Tags    []string
	Content string
	TopK    int
}

// SimilarityMatch is a stored story annotated with its similarity score
type SimilarityMatch struct {
	types.Story
	SimilarityScore float64 `json:"similarity_score"`
}

// Signal weights for the similarity score
const (
	tagOverlapWeight        = 0.4
	titleSimilarityWeight   = 0.2
	contentSimilarityWeight = 0.4

	defaultTopK = 3
)

// FindSimilar ranks the user's stories against the query, descending by score.
// Stories scoring zero are excluded entirely; ties preserve the collaborator's
// original order. Results are truncated to TopK (default 3).
func (a *Aggregator) FindSimilar(ctx context.Context, userID string, query SimilarityQuery) []SimilarityMatch {
	stories, err := a.stories.ListStories(ctx, userID)
	if err != nil || len(stories) == 0 {
		return []SimilarityMatch{}
	}

	topK := query.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	matches := make([]SimilarityMatch, 0, len(stories))
	for _, story := range stories {
		score := 0.0

		if len(query.Tags) > 0 && len(story.Tags) > 0 {
			overlap := tagOverlap(story.Tags, query.Tags)
			score += overlap * tagOverlapWeight
		}

		if query.Title != "" && story.Title != "" {
			score += TextSimilarity(query.Title, story.Title) * titleSimilarityWeight
		}

		if query.Content != "" {
			storyContent := strings.TrimSpace(story.Problem + " " + story.Action + " " + story.Result)
			if storyContent != "" {
				score += TextSimilarity(query.Content, storyContent) * contentSimilarityWeight
			}
		}

		if score > 0 {
			matches = append(matches, SimilarityMatch{Story: story, SimilarityScore: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// tagOverlap returns |story ∩ query| / |query|
func tagOverlap(storyTags, queryTags []string) float64 {
	storySet := make(map[string]bool, len(storyTags))
	for _, tag := range storyTags {
		storySet[tag] = true
	}
	seen := make(map[string]bool, len(queryTags))
	matched := 0
	for _, tag := range queryTags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		if storySet[tag] {
			matched++
		}
	}
	return float64(matched) / float64(len(seen))
}
