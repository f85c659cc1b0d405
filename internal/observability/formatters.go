// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/fleet-estimator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDamageAreas outputs the selected parts and the areas they map to.
func (p *Printer) PrintDamageAreas(parts []types.VehiclePart, areas []types.DamageArea) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Selected parts: %d\n", len(parts)))
	count := min(len(parts), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", parts[i]))
	}
	if len(parts) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(parts)-maxItemsToShow))
	}
	sb.WriteString("\n")

	if len(areas) == 0 {
		sb.WriteString("No damaged areas")
	} else {
		sb.WriteString("Damaged areas:\n")
		for _, a := range areas {
			sb.WriteString(fmt.Sprintf("  • %s\n", a))
		}
	}

	p.printBox("DAMAGED AREAS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintManualEstimate outputs the inputs and the total of a manual estimate.
func (p *Printer) PrintManualEstimate(input types.ManualEstimateInput, result *types.ManualEstimateResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Part:        %s\n", input.PartName))
	sb.WriteString(fmt.Sprintf("Part cost:   %s\n", types.FormatCost(input.PartCost)))
	sb.WriteString(fmt.Sprintf("Labor:       %g h @ %s/h\n", input.LaborHours, types.FormatCost(input.LaborRate)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Estimated:   %s", types.FormatCost(result.EstimatedCost)))

	p.printBox("MANUAL ESTIMATE", sb.String())
}

// PrintAIEstimate outputs the vehicle, areas and the model's cost breakdown.
func (p *Printer) PrintAIEstimate(input types.AIEstimateInput, result *types.AIEstimateResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	vehicle := strings.TrimSpace(input.VehicleYear + " " + input.VehicleMake)
	if vehicle == "" {
		vehicle = "unknown"
	}
	sb.WriteString(fmt.Sprintf("Vehicle:   %s\n", vehicle))
	sb.WriteString(fmt.Sprintf("Areas:     %s\n", types.JoinAreas(input.DamagedAreas)))
	sb.WriteString("\n")

	if breakdown := strings.TrimSpace(result.CostBreakdown); breakdown != "" {
		sb.WriteString("Breakdown:\n")
		for _, line := range strings.Split(breakdown, "\n") {
			sb.WriteString(fmt.Sprintf("  %s\n", strings.TrimSpace(line)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Estimated: %s", types.FormatCost(result.EstimatedCost)))

	p.printBox("AI DAMAGE ESTIMATE", sb.String())
}

// PrintVehicle outputs a stored vehicle record.
func (p *Printer) PrintVehicle(v *types.Vehicle) {
	if v == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:     %s\n", v.ID))
	sb.WriteString(fmt.Sprintf("Fleet:  %s\n", v.FleetID))
	sb.WriteString(fmt.Sprintf("Car:    %d %s\n", v.Year, v.DisplayName()))
	sb.WriteString(fmt.Sprintf("VIN:    %s", v.VIN))

	p.printBox("VEHICLE", sb.String())
}
