package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/parfolio/internal/chains"
	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/observability"
	"github.com/jonathan/parfolio/internal/types"
)

var (
	tagProblem string
	tagAction  string
	tagResult  string
	tagAPIKey  string
	tagVerbose bool
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Assign competency tags to a PAR story",
	Long:  "Assign one to three behavioral competency tags from the fixed vocabulary to a Problem-Action-Result story.",
	RunE:  runTag,
}

func init() {
	tagCmd.Flags().StringVar(&tagProblem, "problem", "", "Problem section of the story (required)")
	tagCmd.Flags().StringVar(&tagAction, "action", "", "Action section of the story (required)")
	tagCmd.Flags().StringVar(&tagResult, "result", "", "Result section of the story (required)")
	tagCmd.Flags().StringVar(&tagAPIKey, "api-key", "", "Gemini API key (overrides GOOGLE_API_KEY env var)")
	tagCmd.Flags().BoolVarP(&tagVerbose, "verbose", "v", false, "Print a formatted summary to stderr")
	_ = tagCmd.MarkFlagRequired("problem")
	_ = tagCmd.MarkFlagRequired("action")
	_ = tagCmd.MarkFlagRequired("result")
	rootCmd.AddCommand(tagCmd)
}

func runTag(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(tagAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	tags, err := chains.TagStory(ctx, client, types.PARTriple{
		Problem: tagProblem,
		Action:  tagAction,
		Result:  tagResult,
	})
	if err != nil {
		return fmt.Errorf("tagging failed: %w", err)
	}

	if tagVerbose {
		observability.NewPrinter(os.Stderr).PrintTags(tags)
	}

	jsonBytes, err := json.MarshalIndent(tags, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
