package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("duplicate entry")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type apiError struct {
	kind    error
	message string
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Unwrap() error { return e.kind }

// Wrap pairs a client-facing message with an error kind. The kind drives the
// status code in RespondError while the message becomes the response body.
func Wrap(kind error, message string) error {
	return &apiError{kind: kind, message: message}
}

// RespondError maps domain errors to `{"error": ...}` responses. Conflicts map
// to 400 rather than 409; the dashboard client treats duplicates as validation
// failures.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidInput):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		Error(w, http.StatusUnauthorized, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
