package estimate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/jonathan/fleet-estimator/internal/llm"
	"github.com/jonathan/fleet-estimator/internal/prompts"
	"github.com/jonathan/fleet-estimator/internal/schemas"
	"github.com/jonathan/fleet-estimator/internal/types"
)

const (
	promptFile = "estimation.json"
	promptKey  = "estimate-repair-cost"
)

// ResultSchema is the structured output requested from the model.
var ResultSchema = llm.ResponseSchema{
	Name: "AIEstimateResult",
	Fields: []llm.SchemaField{
		{
			Name:        "estimatedCost",
			Type:        llm.FieldNumber,
			Description: "total estimated repair cost in US dollars, never negative",
			Required:    true,
		},
		{
			Name:        "costBreakdown",
			Type:        llm.FieldString,
			Description: "itemized parts and labor, one \"- \" item per line",
			Required:    true,
		},
	},
}

// Model is the generative capability the AI estimator depends on.
// llm.Client satisfies it.
type Model interface {
	GenerateStructured(ctx context.Context, req llm.StructuredRequest, tier llm.ModelTier) (string, error)
}

// AIEstimator prices a damage sketch by asking a Model.
type AIEstimator struct {
	model   Model
	tier    llm.ModelTier
	timeout time.Duration
	logger  *log.Logger
}

// AIOption configures an AIEstimator.
type AIOption func(*AIEstimator)

// WithTier selects the model tier. Defaults to llm.TierStandard.
func WithTier(tier llm.ModelTier) AIOption {
	return func(e *AIEstimator) { e.tier = tier }
}

// WithTimeout bounds each model call. Zero leaves the caller's context in charge.
func WithTimeout(d time.Duration) AIOption {
	return func(e *AIEstimator) { e.timeout = d }
}

// WithLogger sets the logger used for call outcomes. A nil logger disables logging.
func WithLogger(l *log.Logger) AIOption {
	return func(e *AIEstimator) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		e.logger = l
	}
}

// NewAIEstimator creates an estimator backed by model.
func NewAIEstimator(model Model, opts ...AIOption) *AIEstimator {
	e := &AIEstimator{
		model:  model,
		tier:   llm.TierStandard,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate asks the model for a repair cost. Input is validated before any
// remote call; the model's answer is schema-checked and never partially returned.
func (e *AIEstimator) Estimate(ctx context.Context, input types.AIEstimateInput) (*types.AIEstimateResult, error) {
	if err := validateAIInput(input); err != nil {
		return nil, err
	}

	req, err := BuildRequest(input)
	if err != nil {
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := e.model.GenerateStructured(ctx, req, e.tier)
	if err == nil {
		// a model that ignores cancellation must not turn a canceled call into a result
		err = ctx.Err()
	}
	if err != nil {
		e.logger.Printf("[estimate] model call failed after %v: %v", time.Since(start), err)
		return nil, &ModelUnavailableError{Message: "model call failed", Cause: err}
	}

	result, err := parseResult(text)
	if err != nil {
		e.logger.Printf("[estimate] rejected model output after %v: %v", time.Since(start), err)
		return nil, err
	}

	e.logger.Printf("[estimate] %s for [%s] in %v", types.FormatCost(result.EstimatedCost), types.JoinAreas(input.DamagedAreas), time.Since(start))
	return result, nil
}

// BuildRequest assembles the prompt, schema and sketch attachment for input.
func BuildRequest(input types.AIEstimateInput) (llm.StructuredRequest, error) {
	prompt, err := prompts.Render(promptFile, promptKey, map[string]string{
		"DamagedAreas": types.JoinAreas(input.DamagedAreas),
		"VehicleMake":  input.VehicleMake,
		"VehicleYear":  input.VehicleYear,
	})
	if err != nil {
		return llm.StructuredRequest{}, fmt.Errorf("failed to load estimation prompt: %w", err)
	}

	schema := ResultSchema
	return llm.StructuredRequest{
		Prompt: prompt + "\n\n" + schema.Instructions(),
		Media: []llm.Media{{
			MIMEType: input.Sketch.MIMEType,
			Data:     input.Sketch.Data,
		}},
		Schema: &schema,
	}, nil
}

func validateAIInput(input types.AIEstimateInput) error {
	if len(input.DamagedAreas) == 0 {
		return &InvalidInputError{Field: "damagedAreas", Message: "at least one damaged area is required"}
	}
	for _, area := range input.DamagedAreas {
		if strings.TrimSpace(string(area)) == "" {
			return &InvalidInputError{Field: "damagedAreas", Message: "damaged area labels must not be empty"}
		}
	}
	if input.Sketch.IsZero() {
		return &InvalidInputError{Field: "sketch", Message: "a damage sketch is required"}
	}
	return nil
}

func parseResult(text string) (*types.AIEstimateResult, error) {
	cleaned := llm.CleanJSONBlock(text)
	if cleaned == "" {
		return nil, &ModelOutputInvalidError{Message: "empty response"}
	}
	if !json.Valid([]byte(cleaned)) {
		return nil, &ModelOutputInvalidError{Message: "response is not valid JSON"}
	}

	if err := schemas.Validate(schemas.AIEstimateResult, cleaned); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &ModelOutputInvalidError{Message: "response does not match estimate schema", Cause: err}
		}
		return nil, fmt.Errorf("failed to validate model output: %w", err)
	}

	var result types.AIEstimateResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &ModelOutputInvalidError{Message: "failed to decode response", Cause: err}
	}
	return &result, nil
}
