// README: Typed failures of the plan pipeline and their diagnostic kinds.
package itinerary

import (
	"errors"
	"fmt"
	"strings"

	"planai/internal/ai"
)

// Violation names one offending field and the rule it broke.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Field + " " + v.Message
}

func joinViolations(vs []Violation) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "; ")
}

// RequestValidationError is returned when the caller's TripRequest breaks the contract.
// It is always detected before the generator is called.
type RequestValidationError struct {
	Violations []Violation
}

func (e *RequestValidationError) Error() string {
	return "invalid trip request: " + joinViolations(e.Violations)
}

// ResponseParseError is returned when the sanitized model output is not JSON.
type ResponseParseError struct {
	Raw string
	Err error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *ResponseParseError) Unwrap() error { return e.Err }

// ResponseValidationError is returned when parsed model output does not satisfy TripResponse.
type ResponseValidationError struct {
	Raw        string
	Violations []Violation
}

func (e *ResponseValidationError) Error() string {
	return "model output does not match the itinerary schema: " + joinViolations(e.Violations)
}

// Error kinds used in logs and the generation audit log.
const (
	KindRequestValidation  = "request_validation"
	KindGeneration         = "generation"
	KindResponseParse      = "response_parse"
	KindResponseValidation = "response_validation"
	KindInternal           = "internal"
)

// Kind classifies err into one of the Kind* labels.
func Kind(err error) string {
	var (
		reqErr   *RequestValidationError
		genErr   *ai.GenerationError
		parseErr *ResponseParseError
		valErr   *ResponseValidationError
	)
	switch {
	case errors.As(err, &reqErr):
		return KindRequestValidation
	case errors.As(err, &genErr):
		return KindGeneration
	case errors.As(err, &parseErr):
		return KindResponseParse
	case errors.As(err, &valErr):
		return KindResponseValidation
	default:
		return KindInternal
	}
}

// RawOutput returns the model text carried by a parse or validation failure.
func RawOutput(err error) (string, bool) {
	var parseErr *ResponseParseError
	if errors.As(err, &parseErr) {
		return parseErr.Raw, true
	}
	var valErr *ResponseValidationError
	if errors.As(err, &valErr) {
		return valErr.Raw, true
	}
	return "", false
}
