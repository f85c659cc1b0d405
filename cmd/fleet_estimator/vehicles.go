package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/fleet-estimator/internal/db"
	"github.com/jonathan/fleet-estimator/internal/observability"
	"github.com/jonathan/fleet-estimator/internal/types"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List a user's vehicles in the configured fleet",
	Long:  "List the vehicles registered by a user in the configured fleet, newest first. Requires DATABASE_URL.",
	RunE:  runVehicles,
}

var (
	vehiclesUserID string
)

type vehicleLister interface {
	ListVehicles(ctx context.Context, userID uuid.UUID, fleetID string) ([]types.Vehicle, error)
}

// openVehicleLister connects to the vehicle store; replaced in tests.
var openVehicleLister = func(ctx context.Context, databaseURL string) (vehicleLister, func(), error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	return database, database.Close, nil
}

func init() {
	vehiclesCmd.Flags().StringVar(&vehiclesUserID, "user-id", "", "Owner user UUID (required)")

	_ = vehiclesCmd.MarkFlagRequired("user-id")
	rootCmd.AddCommand(vehiclesCmd)
}

func runVehicles(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(vehiclesUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL environment variable or database_url in config)")
	}

	ctx := commandContext(cmd)
	store, closeStore, err := openVehicleLister(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closeStore()

	vehicles, err := store.ListVehicles(ctx, userID, cfg.FleetID)
	if err != nil {
		return fmt.Errorf("failed to list vehicles: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for i := range vehicles {
			printer.PrintVehicle(&vehicles[i])
		}
	}
	return writeJSON(cmd.OutOrStdout(), vehicles)
}
