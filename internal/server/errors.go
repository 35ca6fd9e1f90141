// Package server provides the HTTP REST API of the matching service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/talent-match/internal/batch"
)

// ErrNotFound indicates a referenced resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
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
	var notFound *ErrNotFound
	var batchNotFound *batch.ErrNotFound
	var validation *ErrValidation
	switch {
	case errors.As(err, &notFound), errors.As(err, &batchNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the message safe to send to a client. Internal errors are
// reported generically; their details only go to the log.
func publicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
