package summaries

import "errors"

var (
	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates no summary has the requested id.
	ErrNotFound = errors.New("summary not found")

	// ErrGeneration indicates the provider call failed or produced no usable text.
	ErrGeneration = errors.New("summary generation failed")

	// ErrEmptyResponse is wrapped by ErrGeneration when the provider answered with no text.
	ErrEmptyResponse = errors.New("the AI model returned an empty response")

	// ErrStore indicates the persistence layer failed.
	ErrStore = errors.New("summary store failure")

	// ErrNotification indicates the email send failed.
	ErrNotification = errors.New("notification failed")
)

// Stable error codes returned to HTTP clients.
const (
	CodeValidation   = "validation_error"
	CodeNotFound     = "not_found"
	CodeGeneration   = "generation_error"
	CodeStore        = "store_error"
	CodeNotification = "notification_error"
)

// ValidationError carries a caller-facing message and matches ErrInvalidInput.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is reports ErrInvalidInput as a match so callers can use errors.Is.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(msg string, cause error) error {
	return &ValidationError{Message: msg, Err: cause}
}
