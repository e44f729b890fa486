package chains

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/prompts"
	"github.com/jonathan/parfolio/internal/types"
)

const maxTagAssignments = 3

// TagStory assigns 1-3 competency tags from the fixed vocabulary to a PAR
// story, each with a confidence score and a short reasoning.
func TagStory(ctx context.Context, client llm.Client, par types.PARTriple) ([]types.TagAssignment, error) {
	prompt := buildTaggingPrompt(par)

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierPrimary)
	if err != nil {
		return nil, &InvokeError{Chain: "tagging", Cause: err}
	}

	var response struct {
		Tags []types.TagAssignment `json:"tags"`
	}
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, &ParseError{Chain: "tagging", Cause: err}
	}

	if err := validateTags(response.Tags); err != nil {
		return nil, err
	}
	return response.Tags, nil
}

func buildTaggingPrompt(par types.PARTriple) string {
	system := prompts.MustGet(prompts.TaggingFile, "system")
	user := prompts.Format(prompts.MustGet(prompts.TaggingFile, "user"), map[string]string{
		"Problem": par.Problem,
		"Action":  par.Action,
		"Result":  par.Result,
	})
	return system + "\n\n" + user
}

func validateTags(tags []types.TagAssignment) error {
	if len(tags) == 0 {
		return &OutputError{Chain: "tagging", Message: "no tags assigned"}
	}
	if len(tags) > maxTagAssignments {
		return &OutputError{Chain: "tagging", Message: fmt.Sprintf("%d tags assigned, at most %d allowed", len(tags), maxTagAssignments)}
	}
	for _, assignment := range tags {
		if !types.IsCompetencyTag(assignment.Tag) {
			return &OutputError{Chain: "tagging", Message: fmt.Sprintf("tag %q is not in the competency vocabulary", assignment.Tag)}
		}
		if assignment.Confidence < 0 || assignment.Confidence > 1 {
			return &OutputError{Chain: "tagging", Message: fmt.Sprintf("confidence %.2f for tag %q out of range", assignment.Confidence, assignment.Tag)}
		}
	}
	return nil
}
