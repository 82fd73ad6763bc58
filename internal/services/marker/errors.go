package marker

import (
	"fmt"
	"strings"
)

// FieldError reports one rejected request parameter together with the
// values it would have accepted.
type FieldError struct {
	Field   string `json:"field"`
	Allowed string `json:"allowed"`
	Message string `json:"message"`
}

// RangeError builds the FieldError for an out-of-range integer parameter.
func RangeError(field string, value, min, max int) FieldError {
	return FieldError{
		Field:   field,
		Allowed: fmt.Sprintf("%d-%d", min, max),
		Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value),
	}
}

// RequiredError builds the FieldError for a missing required parameter.
func RequiredError(field string, min, max int) FieldError {
	return FieldError{
		Field:   field,
		Allowed: fmt.Sprintf("%d-%d", min, max),
		Message: "is required",
	}
}

// TypeError builds the FieldError for a parameter that failed to parse
// as an integer.
func TypeError(field, raw string) FieldError {
	return FieldError{
		Field:   field,
		Allowed: "integer",
		Message: fmt.Sprintf("must be an integer, got %q", raw),
	}
}

// ValidationError aggregates every rejected field of a request. It maps
// to an HTTP 422 at the transport layer.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return "invalid parameters: " + strings.Join(names, ", ")
}
