package analysis

import (
	"fmt"
	"strings"
)

// StructureIssueType identifies a structural balance problem
type StructureIssueType string

// Structure issue constants
const (
	IssueTooShort        StructureIssueType = "too_short"
	IssueTooLong         StructureIssueType = "too_long"
	IssueProblemTooShort StructureIssueType = "problem_too_short"
	IssueProblemTooLong  StructureIssueType = "problem_too_long"
	IssueActionTooShort  StructureIssueType = "action_too_short"
	IssueActionTooLong   StructureIssueType = "action_too_long"
	IssueResultTooShort  StructureIssueType = "result_too_short"
)

// StructureIssue is a single structural problem with a human-readable message
type StructureIssue struct {
	Type    StructureIssueType `json:"type"`
	Message string             `json:"message"`
}

// WordCounts holds per-section and total whitespace-token counts
type WordCounts struct {
	Problem int `json:"problem"`
	Action  int `json:"action"`
	Result  int `json:"result"`
	Total   int `json:"total"`
}

// Percentages holds each section's share of the total word count
type Percentages struct {
	Problem float64 `json:"problem"`
	Action  float64 `json:"action"`
	Result  float64 `json:"result"`
}

// StructureAnalysis is the result of the structural balance analyzer
type StructureAnalysis struct {
	WordCounts   WordCounts       `json:"word_counts"`
	Percentages  Percentages      `json:"percentages"`
	Issues       []StructureIssue `json:"issues"`
	BalanceScore float64          `json:"balance_score"`
}

// Ideal PAR distribution and length bounds
const (
	idealProblemPct = 20.0
	idealActionPct  = 55.0
	idealResultPct  = 25.0

	minTotalWords = 100
	maxTotalWords = 400
)

// AnalyzeStructure computes word counts, section percentages, balance issues,
// and a balance score measuring proximity to the ideal 20/55/25 distribution.
func AnalyzeStructure(problem, action, result string) StructureAnalysis {
	counts := WordCounts{
		Problem: len(strings.Fields(problem)),
		Action:  len(strings.Fields(action)),
		Result:  len(strings.Fields(result)),
	}
	counts.Total = counts.Problem + counts.Action + counts.Result

	var pct Percentages
	if counts.Total > 0 {
		pct.Problem = float64(counts.Problem) / float64(counts.Total) * 100
		pct.Action = float64(counts.Action) / float64(counts.Total) * 100
		pct.Result = float64(counts.Result) / float64(counts.Total) * 100
	}

	var issues []StructureIssue
	if counts.Total < minTotalWords {
		issues = append(issues, StructureIssue{
			Type:    IssueTooShort,
			Message: fmt.Sprintf("Story is only %d words. Aim for 150-300 words for interview responses.", counts.Total),
		})
	} else if counts.Total > maxTotalWords {
		issues = append(issues, StructureIssue{
			Type:    IssueTooLong,
			Message: fmt.Sprintf("Story is %d words. Consider trimming to under 300 words for conciseness.", counts.Total),
		})
	}

	// Section-balance issues only make sense for a non-empty story
	if counts.Total > 0 {
		if pct.Problem < 10 {
			issues = append(issues, StructureIssue{
				Type:    IssueProblemTooShort,
				Message: fmt.Sprintf("Problem is only %.0f%% of the story. Add more context about the challenge.", pct.Problem),
			})
		} else if pct.Problem > 40 {
			issues = append(issues, StructureIssue{
				Type:    IssueProblemTooLong,
				Message: fmt.Sprintf("Problem is %.0f%% of the story. Trim context and focus on the core challenge.", pct.Problem),
			})
		}

		if pct.Action < 40 {
			issues = append(issues, StructureIssue{
				Type:    IssueActionTooShort,
				Message: fmt.Sprintf("Action is only %.0f%% of the story. This should be the longest section showing YOUR specific steps.", pct.Action),
			})
		} else if pct.Action > 75 {
			issues = append(issues, StructureIssue{
				Type:    IssueActionTooLong,
				Message: fmt.Sprintf("Action is %.0f%% of the story. Ensure results get sufficient attention.", pct.Action),
			})
		}

		if pct.Result < 15 {
			issues = append(issues, StructureIssue{
				Type:    IssueResultTooShort,
				Message: fmt.Sprintf("Result is only %.0f%% of the story. Expand on impact and outcomes.", pct.Result),
			})
		}
	}

	deviation := (abs(pct.Problem-idealProblemPct) + abs(pct.Action-idealActionPct) + abs(pct.Result-idealResultPct)) / 3
	balanceScore := 1.0 - deviation/50
	if balanceScore < 0 {
		balanceScore = 0
	}

	return StructureAnalysis{
		WordCounts:   counts,
		Percentages:  pct,
		Issues:       issues,
		BalanceScore: balanceScore,
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
