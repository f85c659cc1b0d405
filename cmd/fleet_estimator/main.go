// Package main provides the entry point for the fleet damage estimator CLI and HTTP API server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/fleet-estimator/internal/config"
	"github.com/jonathan/fleet-estimator/internal/types"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "fleet_estimator",
	Short: "Fleet damage estimator",
	Long:  "Fleet damage estimator maps damaged vehicle parts to repair areas, renders damage sketches and prices repairs manually or with a generative model.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print formatted summaries to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: file, then environment,
// then built-in defaults.
func loadConfig() (config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	withEnv, err := cfg.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	merged := withEnv.MergeWithDefaults(config.Defaults())
	if verbose {
		merged.Verbose = true
	}
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// parsePartsFlag splits a comma separated --parts value into vehicle parts.
func parsePartsFlag(value string) ([]types.VehiclePart, error) {
	var ids []string
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return types.ParseVehicleParts(ids)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
