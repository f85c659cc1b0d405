package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/fleet-estimator/internal/estimate"
)

// ErrVehicleNotFound indicates the vehicle does not exist for the caller
type ErrVehicleNotFound struct {
	VehicleID uuid.UUID
}

func (e *ErrVehicleNotFound) Error() string {
	return fmt.Sprintf("vehicle not found: %s", e.VehicleID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrFeatureDisabled indicates a route whose backing service is not configured
type ErrFeatureDisabled struct {
	Feature string
}

func (e *ErrFeatureDisabled) Error() string {
	return fmt.Sprintf("%s not configured", e.Feature)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Retryable bool   `json:"retryable"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *ErrVehicleNotFound
	var validation *ErrValidation
	var disabled *ErrFeatureDisabled

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &disabled):
		return http.StatusServiceUnavailable
	}

	switch estimate.KindOf(err) {
	case estimate.KindInvalidInput:
		return http.StatusBadRequest
	case estimate.KindModelOutputInvalid:
		return http.StatusBadGateway
	case estimate.KindModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorKind names the error class reported to clients.
func errorKind(err error) string {
	var notFound *ErrVehicleNotFound
	var validation *ErrValidation
	var disabled *ErrFeatureDisabled

	switch {
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &validation):
		return string(estimate.KindInvalidInput)
	case errors.As(err, &disabled):
		return "unavailable"
	}
	if kind := estimate.KindOf(err); kind != estimate.KindUnknown {
		return string(kind)
	}
	return "internal"
}

// writeError maps err to a status and JSON body. Internal errors are logged
// and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	body := errorBody{
		Error:     err.Error(),
		Kind:      errorKind(err),
		Retryable: estimate.IsRetryable(err),
	}
	if status == http.StatusInternalServerError {
		log.Printf("[error] %v", err)
		body.Error = "internal server error"
	}
	if body.Retryable {
		w.Header().Set("Retry-After", "5")
	}
	s.jsonResponse(w, status, body)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, errorBody{Error: message, Kind: statusKind(status)})
}

func statusKind(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(estimate.KindInvalidInput)
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusServiceUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}
