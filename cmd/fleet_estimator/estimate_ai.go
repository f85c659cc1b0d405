package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/fleet-estimator/internal/damage"
	"github.com/jonathan/fleet-estimator/internal/estimate"
	"github.com/jonathan/fleet-estimator/internal/llm"
	"github.com/jonathan/fleet-estimator/internal/observability"
	"github.com/jonathan/fleet-estimator/internal/sketch"
	"github.com/jonathan/fleet-estimator/internal/types"
)

var estimateAICmd = &cobra.Command{
	Use:   "estimate-ai",
	Short: "Estimate repair cost from a damage sketch with Gemini",
	Long:  "Map the selected parts to damage areas, render the damage sketch and ask the model for a structured repair-cost estimate.",
	RunE:  runEstimateAI,
}

var (
	aiParts  string
	aiMake   string
	aiYear   string
	aiAPIKey string
)

// newModelClient builds the model capability; replaced in tests.
var newModelClient = func(ctx context.Context, apiKey string) (llm.Client, error) {
	return llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
}

func init() {
	estimateAICmd.Flags().StringVar(&aiParts, "parts", "", "Comma separated part identifiers (required)")
	estimateAICmd.Flags().StringVar(&aiMake, "make", "", "Vehicle make")
	estimateAICmd.Flags().StringVar(&aiYear, "year", "", "Vehicle model year")
	estimateAICmd.Flags().StringVar(&aiAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	_ = estimateAICmd.MarkFlagRequired("parts")
	rootCmd.AddCommand(estimateAICmd)
}

func runEstimateAI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	parts, err := parsePartsFlag(aiParts)
	if err != nil {
		return err
	}

	apiKey := aiAPIKey
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	areas := damage.MapPartsToAreas(parts)
	s, err := sketch.Serialize(parts, sketch.DefaultGeometry())
	if err != nil {
		return fmt.Errorf("failed to serialize sketch: %w", err)
	}
	input := types.AIEstimateInput{
		Sketch:       s,
		DamagedAreas: areas,
		VehicleMake:  aiMake,
		VehicleYear:  aiYear,
	}

	ctx := commandContext(cmd)
	client, err := newModelClient(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}()

	opts := []estimate.AIOption{
		estimate.WithTier(cfg.Tier()),
		estimate.WithTimeout(cfg.Timeout()),
	}
	if cfg.Verbose {
		opts = append(opts, estimate.WithLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)))
	}

	result, err := estimate.NewAIEstimator(client, opts...).Estimate(ctx, input)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintAIEstimate(input, result)
	}
	return writeJSON(cmd.OutOrStdout(), costOutput{
		EstimatedCost: result.EstimatedCost,
		CostBreakdown: result.CostBreakdown,
		Display:       types.FormatCost(result.EstimatedCost),
	})
}
