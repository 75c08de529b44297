package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON by the global error handler.
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets middleware decide whether to override the message.
//   - Errors: list of per-field errors (validation).
//   - Detail: underlying cause, serialized as "error" (optional).
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
	Detail   string       `json:"error,omitempty"`
}

// Error returns the client message, so logging the error shows it.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It only compares the type, not Code/Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithError returns a copy of this HTTPError carrying cause as its Detail.
// A nil cause leaves Detail untouched.
func (e *HTTPError) WithError(cause error) *HTTPError {
	clone := *e
	if cause != nil {
		clone.Detail = cause.Error()
	}
	return &clone
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
