// Package pipeline provides the high-level orchestration for turning a raw
// spoken transcript into a complete coached story: structuring, tagging,
// and coaching in one pass.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/parfolio/internal/agent"
	"github.com/jonathan/parfolio/internal/chains"
	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names reported through ProgressCallback.
const (
	StepStructure = "structure"
	StepTagging   = "tagging"
	StepCoaching  = "coaching"
)

// ProfileStore fetches the career profile used to personalize coaching
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
}

// ProcessOptions holds the inputs for a full story processing run
type ProcessOptions struct {
	UserID        string
	RawTranscript string
	OnProgress    ProgressCallback
}

// ProcessResult is the complete story payload: structured PAR, assigned tags,
// coaching insights, and any warnings accumulated along the way
type ProcessResult struct {
	Title           string                `json:"title"`
	RawTranscript   string                `json:"raw_transcript"`
	Problem         string                `json:"problem"`
	Action          string                `json:"action"`
	Result          string                `json:"result"`
	ConfidenceScore float64               `json:"confidence_score"`
	Tags            []types.TagAssignment `json:"tags"`
	Coaching        *types.CoachingResult `json:"coaching"`
	Warnings        []string              `json:"warnings"`
}

// Processor runs the structure, tag and coach stages against shared
// collaborators
type Processor struct {
	client   llm.AgentClient
	coach    *agent.Coach
	profiles ProfileStore
}

// NewProcessor creates a Processor. profiles may be nil, in which case
// coaching runs without career context.
func NewProcessor(client llm.AgentClient, coach *agent.Coach, profiles ProfileStore) *Processor {
	return &Processor{
		client:   client,
		coach:    coach,
		profiles: profiles,
	}
}

// Process runs the full transcript-to-coached-story pipeline.
//
// Structuring is fatal: without a PAR story nothing downstream can run.
// Tagging and coaching degrade gracefully; their failures become warnings on
// the result and coaching falls back to a placeholder so the caller always
// receives a complete payload.
func (p *Processor) Process(ctx context.Context, opts ProcessOptions) (*ProcessResult, error) {
	if strings.TrimSpace(opts.RawTranscript) == "" {
		return nil, fmt.Errorf("raw transcript is required")
	}

	structure, err := chains.StructureTranscript(ctx, p.client, opts.RawTranscript)
	if err != nil {
		return nil, fmt.Errorf("structuring failed: %w", err)
	}
	emitProgress(&opts, StepStructure, fmt.Sprintf("Structured story: %s", structure.Title), structure)

	result := &ProcessResult{
		Title:           structure.Title,
		RawTranscript:   opts.RawTranscript,
		Problem:         structure.Problem,
		Action:          structure.Action,
		Result:          structure.Result,
		ConfidenceScore: structure.ConfidenceScore,
		Warnings:        append([]string{}, structure.Warnings...),
	}

	par := types.PARTriple{
		Problem: structure.Problem,
		Action:  structure.Action,
		Result:  structure.Result,
	}

	// Tagging and the profile fetch are independent; run them in parallel.
	// Neither failure aborts the run.
	var (
		mu      sync.Mutex
		profile *types.UserProfile
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tags, tagErr := chains.TagStory(gCtx, p.client, par)
		mu.Lock()
		defer mu.Unlock()
		if tagErr != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Behavioral tagging failed: %v", tagErr))
			return nil
		}
		result.Tags = tags
		return nil
	})

	g.Go(func() error {
		if p.profiles == nil {
			return nil
		}
		fetched, profErr := p.profiles.GetProfile(gCtx, opts.UserID)
		mu.Lock()
		defer mu.Unlock()
		if profErr != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Profile lookup failed: %v", profErr))
			return nil
		}
		profile = fetched
		return nil
	})

	// Branches never return errors, but Wait still propagates ctx cancellation
	if err := g.Wait(); err != nil {
		return nil, err
	}
	emitProgress(&opts, StepTagging, fmt.Sprintf("Assigned %d tags", len(result.Tags)), result.Tags)

	coaching, coachErr := p.coachStory(ctx, opts.UserID, par, result.Tags, profile)
	if coachErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Coaching insights failed: %v", coachErr))
		result.Coaching = placeholderCoaching()
	} else {
		result.Coaching = coaching
	}
	emitProgress(&opts, StepCoaching, "Coaching complete", result.Coaching)

	return result, nil
}

func (p *Processor) coachStory(ctx context.Context, userID string, par types.PARTriple, tags []types.TagAssignment, profile *types.UserProfile) (*types.CoachingResult, error) {
	tagNames := make([]string, 0, len(tags))
	for _, assignment := range tags {
		tagNames = append(tagNames, assignment.Tag)
	}

	input := chains.CoachingInput{
		FirstName: firstNameOf(profile),
		PAR:       par,
		Tags:      tagNames,
		Profile:   profile,
	}
	return p.coach.CoachStory(ctx, userID, input)
}

// placeholderCoaching is the boundary fallback when coaching fails outright.
// The core never fabricates coaching content; only this outermost layer does.
func placeholderCoaching() *types.CoachingResult {
	unavailable := types.CoachingInsight{
		Overview: "Unavailable",
		Detail:   "Coaching generation failed or was skipped.",
	}
	return &types.CoachingResult{
		Strength:   unavailable,
		Gap:        unavailable,
		Suggestion: unavailable,
	}
}

func firstNameOf(profile *types.UserProfile) string {
	if profile == nil || profile.FirstName == "" {
		return "User"
	}
	return profile.FirstName
}

func emitProgress(opts *ProcessOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}
