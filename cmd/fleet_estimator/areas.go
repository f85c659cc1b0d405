package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/fleet-estimator/internal/damage"
	"github.com/jonathan/fleet-estimator/internal/observability"
	"github.com/jonathan/fleet-estimator/internal/types"
)

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Map damaged vehicle parts to repair areas",
	Long:  "Map a comma separated list of vehicle part identifiers to the deduplicated damage areas they belong to. Without --parts, lists every part with its area.",
	RunE:  runAreas,
}

var (
	areasParts string
)

func init() {
	areasCmd.Flags().StringVar(&areasParts, "parts", "", "Comma separated part identifiers (e.g. hood,front_left_door)")
	rootCmd.AddCommand(areasCmd)
}

type areasOutput struct {
	Parts []types.VehiclePart `json:"parts"`
	Areas []types.DamageArea  `json:"areas"`
}

func runAreas(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("parts") {
		return writeJSON(cmd.OutOrStdout(), damage.Catalog())
	}

	parts, err := parsePartsFlag(areasParts)
	if err != nil {
		return err
	}
	areas := damage.MapPartsToAreas(parts)

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDamageAreas(parts, areas)
	}
	return writeJSON(cmd.OutOrStdout(), areasOutput{Parts: parts, Areas: areas})
}
