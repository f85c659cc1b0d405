package types

// ManualEstimateInput holds the part and labor figures for a manual estimate.
type ManualEstimateInput struct {
	PartName   string  `json:"partName" validate:"required"`
	PartCost   float64 `json:"partCost" validate:"gte=0"`
	LaborHours float64 `json:"laborHours" validate:"gte=0"`
	LaborRate  float64 `json:"laborRate" validate:"gte=0"`
}

// Validate validates the ManualEstimateInput using the validator.
func (in *ManualEstimateInput) Validate() error {
	return validate.Struct(in)
}

// ManualEstimateResult is the output of the manual cost formula.
type ManualEstimateResult struct {
	EstimatedCost float64 `json:"estimatedCost"`
}

// AIEstimateInput is everything the model needs to price a damage sketch.
type AIEstimateInput struct {
	Sketch       DamageSketch `json:"-"`
	DamagedAreas []DamageArea `json:"damagedAreas"`
	VehicleMake  string       `json:"vehicleMake"`
	VehicleYear  string       `json:"vehicleYear"`
}

// AIEstimateResult is the structured answer returned by the model.
type AIEstimateResult struct {
	EstimatedCost float64 `json:"estimatedCost"`
	// CostBreakdown is a line-delimited list of cost items ("- Bumper: $400").
	CostBreakdown string `json:"costBreakdown"`
}
