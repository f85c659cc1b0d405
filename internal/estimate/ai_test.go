package estimate

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fleet-estimator/internal/llm"
	"github.com/jonathan/fleet-estimator/internal/types"
)

// stubModel records requests and replays a canned answer.
type stubModel struct {
	mu       sync.Mutex
	response string
	err      error
	block    bool
	calls    []llm.StructuredRequest
	tiers    []llm.ModelTier
}

func (s *stubModel) GenerateStructured(ctx context.Context, req llm.StructuredRequest, tier llm.ModelTier) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.tiers = append(s.tiers, tier)
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.response, s.err
}

func (s *stubModel) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func validInput() types.AIEstimateInput {
	return types.AIEstimateInput{
		Sketch:       types.DamageSketch{MIMEType: "image/svg+xml", Data: []byte("<svg/>")},
		DamagedAreas: []types.DamageArea{types.AreaFrontBumper, types.AreaHeadlights},
		VehicleMake:  "Toyota",
		VehicleYear:  "2018",
	}
}

func TestEstimate_ReturnsModelAnswerUnchanged(t *testing.T) {
	model := &stubModel{response: `{"estimatedCost": 1200, "costBreakdown": "- Bumper: $400\n- Headlight: $300\n- Labor: $500"}`}
	estimator := NewAIEstimator(model, WithLogger(quietLogger()))

	result, err := estimator.Estimate(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 1200.0, result.EstimatedCost)
	assert.Equal(t, "- Bumper: $400\n- Headlight: $300\n- Labor: $500", result.CostBreakdown)
	assert.Equal(t, 1, model.callCount())
}

func TestEstimate_AcceptsFencedJSON(t *testing.T) {
	model := &stubModel{response: "```json\n{\"estimatedCost\": 99.95, \"costBreakdown\": \"- Tire: $99.95\"}\n```"}
	estimator := NewAIEstimator(model, WithLogger(quietLogger()))

	result, err := estimator.Estimate(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 99.95, result.EstimatedCost)
}

func TestEstimate_BuildsRequest(t *testing.T) {
	model := &stubModel{response: `{"estimatedCost": 1, "costBreakdown": ""}`}
	estimator := NewAIEstimator(model, WithTier(llm.TierAdvanced), WithLogger(quietLogger()))

	input := validInput()
	_, err := estimator.Estimate(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, model.calls, 1)

	req := model.calls[0]
	assert.Equal(t, llm.TierAdvanced, model.tiers[0])
	assert.Contains(t, req.Prompt, "Damaged Areas: Front Bumper, Headlights")
	assert.Contains(t, req.Prompt, "Vehicle Make: Toyota")
	assert.Contains(t, req.Prompt, "Vehicle Year: 2018")
	assert.Contains(t, req.Prompt, `"estimatedCost": number (required)`)
	assert.Contains(t, req.Prompt, `"costBreakdown": string (required)`)
	assert.NotContains(t, req.Prompt, "{{.")

	require.Len(t, req.Media, 1)
	assert.Equal(t, "image/svg+xml", req.Media[0].MIMEType)
	assert.Equal(t, []byte("<svg/>"), req.Media[0].Data)

	require.NotNil(t, req.Schema)
	assert.Equal(t, []string{"estimatedCost", "costBreakdown"}, req.Schema.RequiredFields())
}

func TestEstimate_DefaultTier(t *testing.T) {
	model := &stubModel{response: `{"estimatedCost": 1, "costBreakdown": ""}`}
	_, err := NewAIEstimator(model, WithLogger(quietLogger())).Estimate(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, llm.TierStandard, model.tiers[0])
}

func TestEstimate_InvalidInputSkipsModel(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*types.AIEstimateInput)
		wantField string
	}{
		{
			name:      "no damaged areas",
			mutate:    func(in *types.AIEstimateInput) { in.DamagedAreas = nil },
			wantField: "damagedAreas",
		},
		{
			name:      "empty damaged areas",
			mutate:    func(in *types.AIEstimateInput) { in.DamagedAreas = []types.DamageArea{} },
			wantField: "damagedAreas",
		},
		{
			name:      "blank area label",
			mutate:    func(in *types.AIEstimateInput) { in.DamagedAreas = []types.DamageArea{" "} },
			wantField: "damagedAreas",
		},
		{
			name:      "missing sketch",
			mutate:    func(in *types.AIEstimateInput) { in.Sketch = types.DamageSketch{} },
			wantField: "sketch",
		},
		{
			name:      "sketch without data",
			mutate:    func(in *types.AIEstimateInput) { in.Sketch.Data = nil },
			wantField: "sketch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &stubModel{response: `{"estimatedCost": 1, "costBreakdown": ""}`}
			input := validInput()
			tt.mutate(&input)

			result, err := NewAIEstimator(model, WithLogger(quietLogger())).Estimate(context.Background(), input)
			assert.Nil(t, result)

			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid), "expected InvalidInputError, got %v", err)
			assert.Equal(t, tt.wantField, invalid.Field)
			assert.Equal(t, 0, model.callCount())
		})
	}
}

func TestEstimate_ModelOutputInvalid(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"missing estimatedCost", `{"costBreakdown": "- Hood: $800"}`},
		{"missing costBreakdown", `{"estimatedCost": 800}`},
		{"cost as string", `{"estimatedCost": "800", "costBreakdown": "x"}`},
		{"negative cost", `{"estimatedCost": -1, "costBreakdown": "x"}`},
		{"not JSON", "I cannot estimate this damage."},
		{"truncated JSON", `{"estimatedCost": 800, "costBreakdown": "`},
		{"empty", ""},
		{"array", `[{"estimatedCost": 1, "costBreakdown": ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &stubModel{response: tt.response}
			result, err := NewAIEstimator(model, WithLogger(quietLogger())).Estimate(context.Background(), validInput())
			assert.Nil(t, result)

			var outputInvalid *ModelOutputInvalidError
			require.True(t, errors.As(err, &outputInvalid), "expected ModelOutputInvalidError, got %v", err)
			assert.Equal(t, KindModelOutputInvalid, KindOf(err))
			assert.False(t, IsRetryable(err))
		})
	}
}

func TestEstimate_ModelUnavailable(t *testing.T) {
	cause := errors.New("503 service unavailable")
	model := &stubModel{err: cause}

	result, err := NewAIEstimator(model, WithLogger(quietLogger())).Estimate(context.Background(), validInput())
	assert.Nil(t, result)

	var unavailable *ModelUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRetryable(err))
}

func TestEstimate_Timeout(t *testing.T) {
	model := &stubModel{block: true}
	estimator := NewAIEstimator(model, WithTimeout(20*time.Millisecond), WithLogger(quietLogger()))

	result, err := estimator.Estimate(context.Background(), validInput())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, KindModelUnavailable, KindOf(err))
}

func TestEstimate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &stubModel{response: `{"estimatedCost": 1, "costBreakdown": ""}`}
	result, err := NewAIEstimator(model, WithLogger(quietLogger())).Estimate(ctx, validInput())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsRetryable(err))
}

func TestNewAIEstimator_NilLogger(t *testing.T) {
	model := &stubModel{response: `{"estimatedCost": 1, "costBreakdown": ""}`}
	estimator := NewAIEstimator(model, WithLogger(nil))

	assert.NotPanics(t, func() {
		_, _ = estimator.Estimate(context.Background(), validInput())
	})
}
