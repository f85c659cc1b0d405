package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/fleet-estimator/internal/damage"
	"github.com/jonathan/fleet-estimator/internal/db"
	"github.com/jonathan/fleet-estimator/internal/server/middleware"
	"github.com/jonathan/fleet-estimator/internal/sketch"
	"github.com/jonathan/fleet-estimator/internal/types"
)

type vehiclesResponse struct {
	Vehicles []types.Vehicle `json:"vehicles"`
}

// vehicleEstimateResponse is an AI estimate for a stored vehicle.
type vehicleEstimateResponse struct {
	VehicleID uuid.UUID          `json:"vehicleId"`
	Areas     []types.DamageArea `json:"areas"`
	aiEstimateResponse
}

// vehicleScope resolves the caller and checks the store is available.
// It writes the error response itself and returns ok=false on failure.
func (s *Server) vehicleScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.store == nil {
		s.writeError(w, &ErrFeatureDisabled{Feature: "vehicle storage"})
		return uuid.Nil, false
	}
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

func pathVehicleID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

// handleListVehicles lists the caller's vehicles, newest first.
func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.vehicleScope(w, r)
	if !ok {
		return
	}

	vehicles, err := s.store.ListVehicles(r.Context(), userID, s.fleetID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, vehiclesResponse{Vehicles: vehicles})
}

// handleCreateVehicle registers a vehicle in the caller's fleet.
func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.vehicleScope(w, r)
	if !ok {
		return
	}

	var req types.CreateVehicleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	now := s.now()
	if err := req.Validate(now); err != nil {
		s.writeError(w, toValidationError(err))
		return
	}

	created, err := s.store.CreateVehicle(r.Context(), db.NewVehicle(userID, s.fleetID, &req, now))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleGetVehicle returns one of the caller's vehicles.
func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.vehicleScope(w, r)
	if !ok {
		return
	}

	vehicle, err := s.lookupVehicle(r, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, vehicle)
}

// handleDeleteVehicle removes one of the caller's vehicles.
func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.vehicleScope(w, r)
	if !ok {
		return
	}

	vehicleID, err := pathVehicleID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	deleted, err := s.store.DeleteVehicle(r.Context(), userID, s.fleetID, vehicleID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !deleted {
		s.writeError(w, &ErrVehicleNotFound{VehicleID: vehicleID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleVehicleEstimate runs the full flow for a stored vehicle: parts to
// areas, sketch rendering, then the AI estimate with the vehicle's make and year.
func (s *Server) handleVehicleEstimate(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.vehicleScope(w, r)
	if !ok {
		return
	}

	vehicle, err := s.lookupVehicle(r, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	parts, err := s.decodeParts(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	areas := damage.MapPartsToAreas(parts)
	drawn, err := sketch.Serialize(parts, s.geometry)
	if err != nil {
		s.writeError(w, err)
		return
	}

	input := types.AIEstimateInput{
		Sketch:       drawn,
		DamagedAreas: areas,
		VehicleMake:  vehicle.Make,
		VehicleYear:  strconv.Itoa(vehicle.Year),
	}

	resp, err := s.runEstimate(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, vehicleEstimateResponse{
		VehicleID:          vehicle.ID,
		Areas:              areas,
		aiEstimateResponse: resp,
	})
}

func (s *Server) lookupVehicle(r *http.Request, userID uuid.UUID) (*types.Vehicle, error) {
	vehicleID, err := pathVehicleID(r)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.store.GetVehicle(r.Context(), userID, s.fleetID, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, &ErrVehicleNotFound{VehicleID: vehicleID}
	}
	return vehicle, nil
}
