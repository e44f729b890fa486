package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/parfolio/internal/config"
	"github.com/jonathan/parfolio/internal/server"
)

var tokenUserID string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a JWT for local API testing",
	Long:  "Generate a signed bearer token for the given user ID using JWT_SECRET, for exercising the REST API locally.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User ID to embed in the token (required)")
	_ = tokenCmd.MarkFlagRequired("user-id")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT configuration: %w", err)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenUserID)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
