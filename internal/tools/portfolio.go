package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/parfolio/internal/portfolio"
)

func (r *Registry) coverageTool() Tool {
	return Tool{
		Name: ToolPortfolioCoverage,
		Description: "Analyze competency tag coverage across the user's story portfolio. " +
			"Shows which competencies have strong coverage vs gaps.",
		Invoke: func(ctx context.Context, _ map[string]any) (string, error) {
			if r.deps.Stories == nil {
				return "Portfolio storage is not configured. No coverage information available.", nil
			}
			agg := portfolio.NewAggregator(r.deps.Stories)
			return FormatCoverage(agg.Coverage(ctx, r.userID)), nil
		},
	}
}

func (r *Registry) similarStoriesTool() Tool {
	return Tool{
		Name: ToolFindSimilarStories,
		Description: "Search for similar stories in the user's portfolio. " +
			"Use to find related experiences or identify patterns. " +
			`Tags should be comma-separated (e.g., "Leadership,Impact").`,
		Params: []Param{
			{Name: "title", Type: "string", Description: "Optional title to match against"},
			{Name: "tags", Type: "string", Description: "Optional comma-separated competency tags to match"},
			{Name: "content", Type: "string", Description: "Optional content to match against (problem/action/result text)"},
			{Name: "top_k", Type: "integer", Description: "Number of results to return (default: 3)"},
		},
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			if r.deps.Stories == nil {
				return "Portfolio storage is not configured. No similar stories available.", nil
			}

			query := portfolio.SimilarityQuery{
				Title:   stringArg(args, "title"),
				Content: stringArg(args, "content"),
				TopK:    intArg(args, "top_k", 0),
			}
			if raw := stringArg(args, "tags"); raw != "" {
				for _, tag := range strings.Split(raw, ",") {
					if tag = strings.TrimSpace(tag); tag != "" {
						query.Tags = append(query.Tags, tag)
					}
				}
			}

			agg := portfolio.NewAggregator(r.deps.Stories)
			return FormatSimilarStories(agg.FindSimilar(ctx, r.userID, query)), nil
		},
	}
}

// FormatCoverage renders a coverage report as plain text for the model
func FormatCoverage(report portfolio.CoverageReport) string {
	var sb strings.Builder
	sb.WriteString("=== Competency Coverage Analysis ===\n\n")
	sb.WriteString(fmt.Sprintf("Total Stories: %d\n", report.TotalStories))
	sb.WriteString(fmt.Sprintf("Coverage Score: %.0f%%\n\n", report.CoverageScore*100))
	sb.WriteString("Stories per Competency:\n")

	type tagCount struct {
		tag   string
		count int
	}
	counts := make([]tagCount, 0, len(report.TagCounts))
	for tag, count := range report.TagCounts {
		counts = append(counts, tagCount{tag, count})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].tag < counts[j].tag
	})
	for _, tc := range counts {
		sb.WriteString(fmt.Sprintf("  %s: %d stories\n", tc.tag, tc.count))
	}

	if len(report.Gaps) > 0 {
		sb.WriteString(fmt.Sprintf("\nCoverage Gaps (%d competencies with no stories):\n", len(report.Gaps)))
		for _, gap := range report.Gaps {
			sb.WriteString(fmt.Sprintf("  - %s\n", gap))
		}
	}
	if len(report.StrongCoverage) > 0 {
		sb.WriteString(fmt.Sprintf("\nStrong Coverage (%d competencies with 3+ stories):\n", len(report.StrongCoverage)))
		for _, tag := range report.StrongCoverage {
			sb.WriteString(fmt.Sprintf("  - %s\n", tag))
		}
	}
	return sb.String()
}

// FormatSimilarStories renders similarity matches as plain text for the model
func FormatSimilarStories(matches []portfolio.SimilarityMatch) string {
	if len(matches) == 0 {
		return "No similar stories found in the portfolio."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== Found %d Similar Stories ===\n", len(matches)))
	for i, match := range matches {
		sb.WriteString(fmt.Sprintf("\n%d. %s (Score: %.2f)\n", i+1, match.Title, match.SimilarityScore))
		tags := "None"
		if len(match.Tags) > 0 {
			tags = strings.Join(match.Tags, ", ")
		}
		sb.WriteString(fmt.Sprintf("   Tags: %s\n", tags))
		sb.WriteString(fmt.Sprintf("   Status: %s\n", match.Status))

		preview := match.Problem
		if len(preview) > 100 {
			preview = preview[:100] + "..."
		}
		sb.WriteString(fmt.Sprintf("   Problem: %s\n", preview))
	}
	return sb.String()
}
