package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/parfolio/internal/chains"
	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/observability"
)

var (
	structureInputFile string
	structureAPIKey    string
	structureVerbose   bool
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Structure a raw transcript into a PAR story",
	Long:  "Read a raw spoken-style transcript and extract a titled Problem-Action-Result story with a confidence score. Reads from stdin when --in is not given.",
	RunE:  runStructure,
}

func init() {
	structureCmd.Flags().StringVarP(&structureInputFile, "in", "i", "", "Path to transcript text file (default: stdin)")
	structureCmd.Flags().StringVar(&structureAPIKey, "api-key", "", "Gemini API key (overrides GOOGLE_API_KEY env var)")
	structureCmd.Flags().BoolVarP(&structureVerbose, "verbose", "v", false, "Print a formatted summary to stderr")
	rootCmd.AddCommand(structureCmd)
}

// readTranscript loads the transcript from a file or stdin
func readTranscript(path string) (string, error) {
	if path == "" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(content), nil
}

// resolveAPIKey prefers the flag value over the environment
func resolveAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key is required (set GOOGLE_API_KEY environment variable or use --api-key flag)")
}

func runStructure(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(structureAPIKey)
	if err != nil {
		return err
	}

	transcript, err := readTranscript(structureInputFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	structure, err := chains.StructureTranscript(ctx, client, transcript)
	if err != nil {
		return fmt.Errorf("failed to structure transcript: %w", err)
	}

	if structureVerbose {
		observability.NewPrinter(os.Stderr).PrintStructure(structure)
	}

	jsonBytes, err := json.MarshalIndent(structure, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
