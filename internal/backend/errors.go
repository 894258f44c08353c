package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingData is returned when a call expects a payload and the
	// envelope carries no data, whatever the HTTP status was.
	ErrMissingData = errors.New("backend response has no data")
	// ErrInvalidPayload is returned when data does not match the expected shape.
	ErrInvalidPayload = errors.New("backend response has invalid shape")
	// ErrInvalidRequest is returned before sending a payload that fails validation.
	ErrInvalidRequest = errors.New("invalid request payload")
	// ErrUnavailable wraps transport failures such as a refused connection.
	ErrUnavailable = errors.New("backend unavailable")
)

// APIError is an error envelope or a non-2xx status from the backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: backend status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: backend status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden)
}
