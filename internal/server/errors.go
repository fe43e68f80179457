package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDocumentLoading indicates the résumé document has not arrived yet
type ErrDocumentLoading struct{}

func (e *ErrDocumentLoading) Error() string {
	return "document is still loading"
}

// ErrDocumentFailed indicates the one-shot document load failed
type ErrDocumentFailed struct {
	Cause error
}

func (e *ErrDocumentFailed) Error() string {
	if e.Cause == nil {
		return "document load failed"
	}
	return fmt.Sprintf("document load failed: %v", e.Cause)
}

func (e *ErrDocumentFailed) Unwrap() error {
	return e.Cause
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, new(*ErrDocumentLoading)):
		return http.StatusServiceUnavailable
	case errors.As(err, new(*ErrDocumentFailed)):
		return http.StatusBadGateway
	case errors.As(err, new(*ErrValidation)):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
