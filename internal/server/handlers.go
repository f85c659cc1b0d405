package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies; sketches are the largest payload.
const maxBodyBytes = 5 << 20

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"aiEstimates": s.estimator != nil,
		"vehicles":    s.store != nil,
	})
}

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return &ErrValidation{Message: "request body is empty"}
		case errors.As(err, &maxErr):
			return &ErrValidation{Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
		default:
			return &ErrValidation{Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
	}
	return nil
}

// toValidationError converts validator output into an ErrValidation naming
// the first failing JSON field.
func toValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &ErrValidation{Message: err.Error()}
	}

	fe := validationErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &ErrValidation{Field: field, Message: "is required"}
	case "url":
		return &ErrValidation{Field: field, Message: "must be a valid URL"}
	default:
		return &ErrValidation{Field: field, Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}
