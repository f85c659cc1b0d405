package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/fleet-estimator/internal/sketch"
)

var sketchCmd = &cobra.Command{
	Use:   "sketch",
	Short: "Render the damage sketch for a part selection",
	Long:  "Render the vehicle diagram with the selected parts highlighted. Writes SVG to --out, or prints the data URI when --out is omitted.",
	RunE:  runSketch,
}

var (
	sketchParts   string
	sketchOutFile string
)

func init() {
	sketchCmd.Flags().StringVar(&sketchParts, "parts", "", "Comma separated part identifiers")
	sketchCmd.Flags().StringVarP(&sketchOutFile, "out", "o", "", "Path to output SVG file")

	rootCmd.AddCommand(sketchCmd)
}

func runSketch(cmd *cobra.Command, _ []string) error {
	parts, err := parsePartsFlag(sketchParts)
	if err != nil {
		return err
	}

	if sketchOutFile == "" {
		s, err := sketch.Serialize(parts, sketch.DefaultGeometry())
		if err != nil {
			return fmt.Errorf("failed to serialize sketch: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), s.DataURI())
		return err
	}

	svg, err := sketch.Render(parts, sketch.DefaultGeometry())
	if err != nil {
		return fmt.Errorf("failed to render sketch: %w", err)
	}
	if err := os.WriteFile(sketchOutFile, svg, 0644); err != nil {
		return fmt.Errorf("failed to write sketch: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote sketch with %d selected parts to %s\n", len(parts), sketchOutFile)
	return nil
}
