// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/parfolio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStructure outputs the structured PAR story extracted from a transcript.
func (p *Printer) PrintStructure(structure *types.PARStructure) {
	if structure == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:      %s\n", structure.Title))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", structure.ConfidenceScore))
	sb.WriteString("\n")

	for _, section := range []struct {
		label string
		text  string
	}{
		{"Problem", structure.Problem},
		{"Action", structure.Action},
		{"Result", structure.Result},
	} {
		text := section.text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s:\n  %s\n", section.label, text))
	}

	if len(structure.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warning := range structure.Warnings {
			if len(warning) > 50 {
				warning = warning[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", warning))
		}
	}

	p.printBox("STRUCTURED STORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTags outputs the competency tags assigned to a story.
func (p *Printer) PrintTags(tags []types.TagAssignment) {
	if len(tags) == 0 {
		return
	}

	var sb strings.Builder
	for i, tag := range tags {
		sb.WriteString(fmt.Sprintf("• %s (%.2f)\n", tag.Tag, tag.Confidence))
		reasoning := tag.Reasoning
		if reasoning != "" {
			if len(reasoning) > 50 {
				reasoning = reasoning[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", reasoning))
		}
		if i < len(tags)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("COMPETENCY TAGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoaching outputs the strength, gap, and suggestion insights.
func (p *Printer) PrintCoaching(result *types.CoachingResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	for i, insight := range []struct {
		label string
		value types.CoachingInsight
	}{
		{"Strength", result.Strength},
		{"Gap", result.Gap},
		{"Suggestion", result.Suggestion},
	} {
		sb.WriteString(fmt.Sprintf("%s: %s\n", insight.label, insight.value.Overview))
		detail := insight.value.Detail
		if len(detail) > 50 {
			detail = detail[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", detail))
		if i < 2 {
			sb.WriteString("\n")
		}
	}

	p.printBox("COACHING INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStories outputs the top stories in a user's portfolio.
func (p *Printer) PrintStories(stories []types.Story) {
	if len(stories) == 0 {
		p.printBox("PORTFOLIO", "No stories saved yet")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total stories: %d\n\n", len(stories)))

	count := min(len(stories), maxItemsToShow)
	for i := 0; i < count; i++ {
		story := stories[i]
		title := story.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		if len(story.Tags) > 0 {
			tags := strings.Join(story.Tags, ", ")
			if len(tags) > 40 {
				tags = tags[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Tags: %s\n", tags))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(stories) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more stories", len(stories)-maxItemsToShow))
	}

	p.printBox("PORTFOLIO", sb.String())
}

// PrintWarnings outputs pipeline warnings accumulated during processing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))

	for i, warning := range warnings {
		if len(warning) > 50 {
			warning = warning[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s", warning))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PIPELINE WARNINGS", sb.String())
}
