package server

import (
	"net/http"

	"github.com/jonathan/fleet-estimator/internal/damage"
	"github.com/jonathan/fleet-estimator/internal/sketch"
	"github.com/jonathan/fleet-estimator/internal/types"
)

// partsRequest is the body of the damage endpoints.
type partsRequest struct {
	Parts []string `json:"parts"`
}

type areasResponse struct {
	Areas []types.DamageArea `json:"areas"`
}

type sketchResponse struct {
	Areas    []types.DamageArea `json:"areas"`
	Sketch   string             `json:"sketch"`
	MIMEType string             `json:"mimeType"`
}

// handleParts lists every selectable part with the area it reports as.
func (s *Server) handleParts(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"parts": damage.Catalog(),
		"areas": damage.Areas(),
	})
}

// handleDamageAreas maps selected parts to damage-area labels.
func (s *Server) handleDamageAreas(w http.ResponseWriter, r *http.Request) {
	parts, err := s.decodeParts(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, areasResponse{Areas: damage.MapPartsToAreas(parts)})
}

// handleDamageSketch maps selected parts and renders the diagram with them highlighted.
func (s *Server) handleDamageSketch(w http.ResponseWriter, r *http.Request) {
	parts, err := s.decodeParts(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	drawn, err := sketch.Serialize(parts, s.geometry)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, sketchResponse{
		Areas:    damage.MapPartsToAreas(parts),
		Sketch:   drawn.DataURI(),
		MIMEType: drawn.MIMEType,
	})
}

func (s *Server) decodeParts(w http.ResponseWriter, r *http.Request) ([]types.VehiclePart, error) {
	var req partsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	parts, err := types.ParseVehicleParts(req.Parts)
	if err != nil {
		return nil, &ErrValidation{Field: "parts", Message: err.Error()}
	}
	return parts, nil
}
