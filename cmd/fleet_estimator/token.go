package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/fleet-estimator/internal/config"
	"github.com/jonathan/fleet-estimator/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	Long:  "Sign a bearer token for the given user with JWT_SECRET, for calling the authenticated API locally.",
	RunE:  runToken,
}

var (
	tokenUserID string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User UUID (a random one is generated when omitted)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID := uuid.New()
	if tokenUserID != "" {
		parsed, err := uuid.Parse(tokenUserID)
		if err != nil {
			return fmt.Errorf("invalid --user-id: %w", err)
		}
		userID = parsed
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(userID)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "User:    %s\nExpires: in %s\n", userID, jwtConfig.Expiration())
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
