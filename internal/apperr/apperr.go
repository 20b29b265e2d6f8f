package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates the referenced wallet or transaction does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a lock or commit failed due to contention. The
	// whole operation can be retried; nothing was applied.
	ErrConflict = errors.New("concurrency conflict")

	// ErrUnavailable indicates the backing store is unreachable.
	ErrUnavailable = errors.New("storage unavailable")
)

// ValidationError reports malformed input on a specific field. Operations that
// return it have had no side effects.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for the named field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NotFound wraps ErrNotFound with the resource kind and identifier.
func NotFound(resource, id string) error {
	return fmt.Errorf("%s %s: %w", resource, id, ErrNotFound)
}

// HTTPStatus maps an error onto the status code the HTTP layer should return.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	if _, ok := AsValidation(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
