package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/fleet-estimator/internal/estimate"
	"github.com/jonathan/fleet-estimator/internal/types"
)

type manualEstimateResponse struct {
	EstimatedCost float64 `json:"estimatedCost"`
	Display       string  `json:"display"`
}

// aiEstimateRequest carries the sketch as a base64 data URI.
type aiEstimateRequest struct {
	Sketch       string   `json:"sketch"`
	DamagedAreas []string `json:"damagedAreas"`
	VehicleMake  string   `json:"vehicleMake"`
	VehicleYear  string   `json:"vehicleYear"`
}

type aiEstimateResponse struct {
	EstimatedCost float64 `json:"estimatedCost"`
	CostBreakdown string  `json:"costBreakdown"`
	Display       string  `json:"display"`
	Cached        bool    `json:"cached"`
}

// handleManualEstimate applies the part plus labor formula.
func (s *Server) handleManualEstimate(w http.ResponseWriter, r *http.Request) {
	var input types.ManualEstimateInput
	if err := decodeJSON(w, r, &input); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := estimate.Manual(input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, manualEstimateResponse{
		EstimatedCost: result.EstimatedCost,
		Display:       types.FormatCost(result.EstimatedCost),
	})
}

// handleAIEstimate prices a client-supplied sketch with the model.
func (s *Server) handleAIEstimate(w http.ResponseWriter, r *http.Request) {
	var req aiEstimateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	input := types.AIEstimateInput{
		VehicleMake: strings.TrimSpace(req.VehicleMake),
		VehicleYear: strings.TrimSpace(req.VehicleYear),
	}
	for _, area := range req.DamagedAreas {
		input.DamagedAreas = append(input.DamagedAreas, types.DamageArea(area))
	}
	// an absent sketch is reported by the estimator
	if req.Sketch != "" {
		drawn, err := types.ParseDamageSketch(req.Sketch)
		if err != nil {
			s.writeError(w, &ErrValidation{Field: "sketch", Message: err.Error()})
			return
		}
		input.Sketch = drawn
	}

	resp, err := s.runEstimate(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// runEstimate serves repeated inputs from the cache and caches only successes.
func (s *Server) runEstimate(ctx context.Context, input types.AIEstimateInput) (aiEstimateResponse, error) {
	if s.estimator == nil {
		return aiEstimateResponse{}, &ErrFeatureDisabled{Feature: "AI estimates"}
	}

	if cached, ok := s.cache.get(input); ok {
		log.Printf("[estimate] cache hit for [%s]", types.JoinAreas(input.DamagedAreas))
		return newAIEstimateResponse(cached, true), nil
	}

	result, err := s.estimator.Estimate(ctx, input)
	if err != nil {
		return aiEstimateResponse{}, err
	}
	s.cache.add(input, *result)
	return newAIEstimateResponse(*result, false), nil
}

func newAIEstimateResponse(result types.AIEstimateResult, cached bool) aiEstimateResponse {
	return aiEstimateResponse{
		EstimatedCost: result.EstimatedCost,
		CostBreakdown: result.CostBreakdown,
		Display:       types.FormatCost(result.EstimatedCost),
		Cached:        cached,
	}
}
