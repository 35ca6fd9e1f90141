package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/batch"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &ErrNotFound{Resource: "candidate", ID: "1"}, http.StatusNotFound},
		{"batch not found", &batch.ErrNotFound{Resource: "job posting", ID: uuid.New()}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", &ErrNotFound{Resource: "x"}), http.StatusNotFound},
		{"validation", &ErrValidation{Field: "limit", Message: "too large"}, http.StatusBadRequest},
		{"other", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "internal server error", publicMessage(errors.New("pq: password authentication failed")))
	assert.Equal(t, "candidate not found: 42", publicMessage(&ErrNotFound{Resource: "candidate", ID: "42"}))
	assert.Equal(t, "validation error: limit - must be at most 100",
		publicMessage(&ErrValidation{Field: "limit", Message: "must be at most 100"}))
}
