package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/parfolio/internal/agent"
	"github.com/jonathan/parfolio/internal/chains"
	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/observability"
	"github.com/jonathan/parfolio/internal/toolcache"
	"github.com/jonathan/parfolio/internal/tools"
	"github.com/jonathan/parfolio/internal/types"
)

var (
	coachProblem   string
	coachAction    string
	coachResult    string
	coachFirstName string
	coachTags      []string
	coachAPIKey    string
	coachVerbose   bool
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Generate coaching insights for a PAR story",
	Long:  "Run the agentic coach against a Problem-Action-Result story and print a strength, a gap, and a concrete suggestion.",
	RunE:  runCoach,
}

func init() {
	coachCmd.Flags().StringVar(&coachProblem, "problem", "", "Problem section of the story (required)")
	coachCmd.Flags().StringVar(&coachAction, "action", "", "Action section of the story (required)")
	coachCmd.Flags().StringVar(&coachResult, "result", "", "Result section of the story (required)")
	coachCmd.Flags().StringVar(&coachFirstName, "first-name", "", "First name used to personalize the coaching")
	coachCmd.Flags().StringSliceVar(&coachTags, "tags", nil, "Competency tags already assigned to the story")
	coachCmd.Flags().StringVar(&coachAPIKey, "api-key", "", "Gemini API key (overrides GOOGLE_API_KEY env var)")
	coachCmd.Flags().BoolVarP(&coachVerbose, "verbose", "v", false, "Print a formatted summary to stderr")
	_ = coachCmd.MarkFlagRequired("problem")
	_ = coachCmd.MarkFlagRequired("action")
	_ = coachCmd.MarkFlagRequired("result")
	rootCmd.AddCommand(coachCmd)
}

func runCoach(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(coachAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	// CLI runs are single-user with no database: the agent still gets the
	// deterministic analyzers and a cache, and the data-backed tools report
	// their capabilities as unavailable.
	deps := tools.Deps{Cache: toolcache.New[string](toolcache.DefaultMaxEntries)}
	coach := agent.NewCoach(client, deps)

	result, err := coach.CoachStory(ctx, "cli", chains.CoachingInput{
		FirstName: coachFirstName,
		PAR: types.PARTriple{
			Problem: coachProblem,
			Action:  coachAction,
			Result:  coachResult,
		},
		Tags: coachTags,
	})
	if err != nil {
		return fmt.Errorf("coaching failed: %w", err)
	}

	if coachVerbose {
		observability.NewPrinter(os.Stderr).PrintCoaching(result)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
