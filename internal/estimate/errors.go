package estimate

import (
	"errors"
	"fmt"
)

// Kind classifies estimator failures for callers that map them to transport codes.
type Kind string

// Error kinds.
const (
	KindUnknown            Kind = ""
	KindInvalidInput       Kind = "invalid_input"
	KindModelUnavailable   Kind = "model_unavailable"
	KindModelOutputInvalid Kind = "model_output_invalid"
)

// InvalidInputError is returned when an estimate request fails validation.
// No remote call is made for invalid input.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// ModelUnavailableError is returned when the model could not be reached or
// did not answer in time. It is safe to retry.
type ModelUnavailableError struct {
	Message string
	Cause   error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model unavailable: %s", e.Message)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}

// ModelOutputInvalidError is returned when the model answered with something
// that is not JSON or does not match the estimate schema.
type ModelOutputInvalidError struct {
	Message string
	Cause   error
}

func (e *ModelOutputInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model output invalid: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model output invalid: %s", e.Message)
}

func (e *ModelOutputInvalidError) Unwrap() error {
	return e.Cause
}

// KindOf reports the kind of an estimator error, or KindUnknown.
func KindOf(err error) Kind {
	var invalidInput *InvalidInputError
	var unavailable *ModelUnavailableError
	var outputInvalid *ModelOutputInvalidError

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &invalidInput):
		return KindInvalidInput
	case errors.As(err, &unavailable):
		return KindModelUnavailable
	case errors.As(err, &outputInvalid):
		return KindModelOutputInvalid
	default:
		return KindUnknown
	}
}

// IsRetryable reports whether retrying the same request may succeed.
func IsRetryable(err error) bool {
	return KindOf(err) == KindModelUnavailable
}
