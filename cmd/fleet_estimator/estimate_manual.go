package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/fleet-estimator/internal/estimate"
	"github.com/jonathan/fleet-estimator/internal/observability"
	"github.com/jonathan/fleet-estimator/internal/types"
)

var estimateManualCmd = &cobra.Command{
	Use:   "estimate-manual",
	Short: "Estimate repair cost from part and labor figures",
	Long:  "Compute part cost plus labor hours times labor rate.",
	RunE:  runEstimateManual,
}

var (
	manualPartName   string
	manualPartCost   float64
	manualLaborHours float64
	manualLaborRate  float64
)

func init() {
	estimateManualCmd.Flags().StringVar(&manualPartName, "part-name", "", "Name of the replaced part (required)")
	estimateManualCmd.Flags().Float64Var(&manualPartCost, "part-cost", 0, "Cost of the part")
	estimateManualCmd.Flags().Float64Var(&manualLaborHours, "labor-hours", 0, "Labor hours")
	estimateManualCmd.Flags().Float64Var(&manualLaborRate, "labor-rate", 0, "Labor rate per hour")

	rootCmd.AddCommand(estimateManualCmd)
}

type costOutput struct {
	EstimatedCost float64 `json:"estimatedCost"`
	CostBreakdown string  `json:"costBreakdown,omitempty"`
	Display       string  `json:"display"`
}

func runEstimateManual(cmd *cobra.Command, _ []string) error {
	input := types.ManualEstimateInput{
		PartName:   manualPartName,
		PartCost:   manualPartCost,
		LaborHours: manualLaborHours,
		LaborRate:  manualLaborRate,
	}

	result, err := estimate.Manual(input)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintManualEstimate(input, result)
	}
	return writeJSON(cmd.OutOrStdout(), costOutput{
		EstimatedCost: result.EstimatedCost,
		Display:       types.FormatCost(result.EstimatedCost),
	})
}
