package chains

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/prompts"
	"github.com/jonathan/parfolio/internal/schemas"
	"github.com/jonathan/parfolio/internal/types"
)

// CoachingInput carries a PAR story plus the personal context used to
// address the user by name and ground the advice in their career goals.
type CoachingInput struct {
	FirstName string
	PAR       types.PARTriple
	Tags      []string
	Profile   *types.UserProfile
}

// CoachStory runs the basic, non-agentic coaching chain on the given tier.
// The agentic orchestrator uses this as its last-resort degraded path with
// the fallback tier; callers without tool access can use it directly.
func CoachStory(ctx context.Context, client llm.Client, input CoachingInput, tier llm.ModelTier) (*types.CoachingResult, error) {
	prompt := BuildCoachingUserMessage(input, "")
	system := prompts.Format(prompts.MustGet(prompts.CoachingFile, "system"), map[string]string{
		"FirstName": displayName(input.FirstName),
	})

	raw, err := client.GenerateJSON(ctx, system+"\n\n"+prompt, tier)
	if err != nil {
		return nil, &InvokeError{Chain: "coaching", Cause: err}
	}

	if err := schemas.ValidateCoaching(raw); err != nil {
		return nil, &ParseError{Chain: "coaching", Cause: err}
	}

	var result types.CoachingResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &ParseError{Chain: "coaching", Cause: err}
	}
	return &result, nil
}

// BuildCoachingUserMessage renders the shared coaching user message. The
// analysis block is empty for the basic chain; the orchestrator injects
// pre-computed analyzer findings there.
func BuildCoachingUserMessage(input CoachingInput, analysis string) string {
	return prompts.Format(prompts.MustGet(prompts.CoachingFile, "user"), map[string]string{
		"FirstName": displayName(input.FirstName),
		"Problem":   input.PAR.Problem,
		"Action":    input.PAR.Action,
		"Result":    input.PAR.Result,
		"Tags":      formatTags(input.Tags),
		"Profile":   formatProfile(input.Profile),
		"Analysis":  analysis,
	})
}

func displayName(firstName string) string {
	if strings.TrimSpace(firstName) == "" {
		return "User"
	}
	return firstName
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "None provided"
	}
	return strings.Join(tags, ", ")
}

func formatProfile(profile *types.UserProfile) string {
	if profile == nil {
		return "None provided"
	}

	var parts []string
	if profile.CurrentRole != "" {
		parts = append(parts, "current role: "+profile.CurrentRole)
	}
	if profile.TargetRole != "" {
		parts = append(parts, "target role: "+profile.TargetRole)
	}
	if profile.CareerStage != "" {
		parts = append(parts, "career stage: "+profile.CareerStage)
	}
	if len(parts) == 0 {
		return "None provided"
	}
	return strings.Join(parts, "; ")
}
