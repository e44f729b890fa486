// Package chains implements the single-shot LLM flows: transcript structuring,
// competency tagging, and the non-agentic coaching fallback. Each chain
// formats an embedded prompt, asks the model for JSON, and decodes the reply
// into a typed result.
package chains

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/prompts"
	"github.com/jonathan/parfolio/internal/types"
)

// StructureTranscript turns a raw spoken transcript into a titled PAR story.
// The model self-assesses extraction quality via ConfidenceScore and Warnings.
func StructureTranscript(ctx context.Context, client llm.Client, transcript string) (*types.PARStructure, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, &OutputError{Chain: "structuring", Message: "transcript is empty"}
	}

	prompt := buildStructuringPrompt(transcript)

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierPrimary)
	if err != nil {
		return nil, &InvokeError{Chain: "structuring", Cause: err}
	}

	var structure types.PARStructure
	if err := json.Unmarshal([]byte(raw), &structure); err != nil {
		return nil, &ParseError{Chain: "structuring", Cause: err}
	}

	if err := validateStructure(&structure); err != nil {
		return nil, err
	}
	return &structure, nil
}

func buildStructuringPrompt(transcript string) string {
	system := prompts.MustGet(prompts.StructuringFile, "system")
	user := prompts.Format(prompts.MustGet(prompts.StructuringFile, "user"), map[string]string{
		"Transcript": transcript,
	})
	return system + "\n\n" + user
}

func validateStructure(s *types.PARStructure) error {
	for _, section := range []struct {
		name  string
		value string
	}{
		{"title", s.Title},
		{"problem", s.Problem},
		{"action", s.Action},
		{"result", s.Result},
	} {
		if strings.TrimSpace(section.value) == "" {
			return &OutputError{Chain: "structuring", Message: fmt.Sprintf("missing %s section", section.name)}
		}
	}
	if s.ConfidenceScore < 0 || s.ConfidenceScore > 1 {
		return &OutputError{Chain: "structuring", Message: fmt.Sprintf("confidence score %.2f out of range", s.ConfidenceScore)}
	}
	return nil
}
