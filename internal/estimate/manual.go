// Package estimate computes repair-cost estimates, either from part and labor
// figures or by asking a generative model to price a damage sketch.
package estimate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/fleet-estimator/internal/types"
)

// Manual computes partCost + laborHours*laborRate. The result is not rounded.
func Manual(input types.ManualEstimateInput) (*types.ManualEstimateResult, error) {
	input.PartName = strings.TrimSpace(input.PartName)

	if err := input.Validate(); err != nil {
		return nil, toInvalidInput(err)
	}
	// gte=0 accepts +Inf
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"partCost", input.PartCost},
		{"laborHours", input.LaborHours},
		{"laborRate", input.LaborRate},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return nil, &InvalidInputError{Field: f.name, Message: "must be a finite number"}
		}
	}

	return &types.ManualEstimateResult{
		EstimatedCost: input.PartCost + input.LaborHours*input.LaborRate,
	}, nil
}

func toInvalidInput(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &InvalidInputError{Message: err.Error()}
	}

	fe := validationErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &InvalidInputError{Field: field, Message: "is required"}
	case "gte":
		return &InvalidInputError{Field: field, Message: fmt.Sprintf("must be greater than or equal to %s", fe.Param())}
	default:
		return &InvalidInputError{Field: field, Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}
