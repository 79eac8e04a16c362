package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches an APIError with status 401
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation matches an APIError with status 400 or 422
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches an APIError with status 404
	ErrNotFound = errors.New("not found")
	// ErrConflict matches an APIError with status 409
	ErrConflict = errors.New("conflict")
)

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	// Message is the server's message, empty when the body carried none
	Message string
	// Fields holds per-field messages of a validation failure
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// NetworkError means the request never got an HTTP answer
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerMessage returns the server's message carried by err, or "" when there is none
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
