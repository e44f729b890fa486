// Package main provides the entry point for the PARfolio story coaching service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parfolio",
	Short: "PARfolio story coaching engine",
	Long:  "PARfolio turns raw interview-story transcripts into structured Problem-Action-Result stories, assigns behavioral competency tags, and generates personalized coaching insights via REST API or CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
