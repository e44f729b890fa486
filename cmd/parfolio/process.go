package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/parfolio/internal/agent"
	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/observability"
	"github.com/jonathan/parfolio/internal/pipeline"
	"github.com/jonathan/parfolio/internal/toolcache"
	"github.com/jonathan/parfolio/internal/tools"
)

var (
	processInputFile string
	processAPIKey    string
	processVerbose   bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full transcript-to-coached-story pipeline",
	Long:  "Structure a raw transcript, assign competency tags, and generate coaching insights in one run. Reads from stdin when --in is not given.",
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processInputFile, "in", "i", "", "Path to transcript text file (default: stdin)")
	processCmd.Flags().StringVar(&processAPIKey, "api-key", "", "Gemini API key (overrides GOOGLE_API_KEY env var)")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print progress and formatted summaries to stderr")
	rootCmd.AddCommand(processCmd)
}

func runProcess(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(processAPIKey)
	if err != nil {
		return err
	}

	transcript, err := readTranscript(processInputFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	deps := tools.Deps{Cache: toolcache.New[string](toolcache.DefaultMaxEntries)}
	coach := agent.NewCoach(client, deps)
	processor := pipeline.NewProcessor(client, coach, nil)

	opts := pipeline.ProcessOptions{
		UserID:        "cli",
		RawTranscript: transcript,
	}
	if processVerbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := processor.Process(ctx, opts)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	if processVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintCoaching(result.Coaching)
		printer.PrintWarnings(result.Warnings)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
