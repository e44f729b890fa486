package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/parfolio/internal/analysis"
)

// Shared parameter set for tools that take a PAR triple
func parParams() []Param {
	return []Param{
		{Name: "problem", Type: "string", Description: "The Problem section of the PAR story", Required: true},
		{Name: "action", Type: "string", Description: "The Action section of the PAR story", Required: true},
		{Name: "result", Type: "string", Description: "The Result section of the PAR story", Required: true},
	}
}

func (r *Registry) storytellingTool() Tool {
	return Tool{
		Name: ToolAnalyzeStorytelling,
		Description: "Analyze a PAR story for weak storytelling patterns like passive voice, " +
			"'we' instead of 'I', and vague results without metrics.",
		Params: parParams(),
		Invoke: func(_ context.Context, args map[string]any) (string, error) {
			result := analysis.AnalyzeStorytelling(
				stringArg(args, "problem"), stringArg(args, "action"), stringArg(args, "result"))
			return FormatStorytelling(result), nil
		},
	}
}

func (r *Registry) structureTool() Tool {
	return Tool{
		Name: ToolAnalyzeStructure,
		Description: "Analyze the structural quality and balance of a PAR story. " +
			"Checks word counts, section percentages, and optimal PAR balance.",
		Params: parParams(),
		Invoke: func(_ context.Context, args map[string]any) (string, error) {
			result := analysis.AnalyzeStructure(
				stringArg(args, "problem"), stringArg(args, "action"), stringArg(args, "result"))
			return FormatStructure(result), nil
		},
	}
}

func (r *Registry) careerAlignmentTool() Tool {
	params := append(parParams(), Param{
		Name: "career_stage", Type: "string",
		Description: "The user's career stage (early_career, mid_career, senior_leadership)",
		Required:    true,
	})
	return Tool{
		Name: ToolCheckCareerAlignment,
		Description: "Validate that a story's scope aligns with the user's career stage. " +
			"Career stages: early_career, mid_career, senior_leadership.",
		Params: params,
		Invoke: func(_ context.Context, args map[string]any) (string, error) {
			result := r.deps.Career.Validate(
				stringArg(args, "problem"), stringArg(args, "action"), stringArg(args, "result"),
				stringArg(args, "career_stage"))
			return FormatAlignment(result), nil
		},
	}
}

// FormatStorytelling renders a storytelling analysis as plain text for the model
func FormatStorytelling(a analysis.StorytellingAnalysis) string {
	if len(a.Issues) == 0 {
		return "No major weak storytelling patterns detected. The story uses active voice and clear language."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d storytelling issues (Quality Score: %.2f):\n", len(a.Issues), a.QualityScore))
	for _, issue := range a.Issues {
		sb.WriteString(fmt.Sprintf("\n[%s] %s\n", strings.ToUpper(string(issue.Severity)), issue.Type))
		sb.WriteString(fmt.Sprintf("  Issue: %s\n", issue.Message))
		sb.WriteString(fmt.Sprintf("  Fix: %s\n", issue.Suggestion))
	}

	if a.HasQuantifiedResults {
		sb.WriteString("\nGood: Results section contains quantified metrics.")
	} else {
		sb.WriteString("\nMissing: No quantified metrics found in results.")
	}
	return sb.String()
}

// FormatStructure renders a structure analysis as plain text for the model
func FormatStructure(a analysis.StructureAnalysis) string {
	var sb strings.Builder
	sb.WriteString("=== Story Structure Analysis ===\n\n")
	sb.WriteString(fmt.Sprintf("Total Words: %d\n", a.WordCounts.Total))
	sb.WriteString(fmt.Sprintf("Balance Score: %.2f/1.00\n\n", a.BalanceScore))
	sb.WriteString("Section Breakdown:\n")
	sb.WriteString(fmt.Sprintf("  Problem: %d words (%.0f%%)\n", a.WordCounts.Problem, a.Percentages.Problem))
	sb.WriteString(fmt.Sprintf("  Action:  %d words (%.0f%%)\n", a.WordCounts.Action, a.Percentages.Action))
	sb.WriteString(fmt.Sprintf("  Result:  %d words (%.0f%%)\n", a.WordCounts.Result, a.Percentages.Result))

	if len(a.Issues) > 0 {
		sb.WriteString("\nIssues Found:\n")
		for _, issue := range a.Issues {
			sb.WriteString(fmt.Sprintf("  - %s\n", issue.Message))
		}
	} else {
		sb.WriteString("\nStory structure is well-balanced.\n")
	}
	return sb.String()
}

// FormatAlignment renders an alignment result as plain text for the model
func FormatAlignment(a analysis.AlignmentResult) string {
	stageDisplay := strings.Title(strings.ReplaceAll(a.CareerStage, "_", " ")) //nolint:staticcheck // ASCII stage names only

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== Career Stage Alignment Check (%s) ===\n\n", stageDisplay))

	if a.Message != "" {
		sb.WriteString(a.Message + "\n")
	} else if a.Aligned {
		sb.WriteString(fmt.Sprintf("Story scope aligns well with %s expectations.\n", stageDisplay))
	} else {
		sb.WriteString(fmt.Sprintf("Story scope may not align with %s expectations.\n\n", stageDisplay))
		sb.WriteString("Flagged phrases (may indicate misaligned scope):\n")
		for _, flag := range a.Flags {
			sb.WriteString(fmt.Sprintf("  - '%s'\n", flag))
		}
	}

	if len(a.PositiveSignals) > 0 {
		sb.WriteString(fmt.Sprintf("\nPositive signals for %s:\n", stageDisplay))
		signals := a.PositiveSignals
		if len(signals) > 5 {
			signals = signals[:5]
		}
		for _, signal := range signals {
			sb.WriteString(fmt.Sprintf("  + '%s'\n", signal))
		}
	}

	sb.WriteString(fmt.Sprintf("\nAlignment Score: %.2f/1.00", a.AlignmentScore))
	return sb.String()
}
