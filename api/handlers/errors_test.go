package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagar-developer08/tree-json/core/errors"
)

func TestToHumaError(t *testing.T) {
	useEnvelopeErrors(t)

	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "NotFoundError returns 404",
			input:          &errors.NotFoundError{Resource: "document", ID: "current"},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "document not found: current",
		},
		{
			name:           "ValidationError returns 400 with its message",
			input:          &errors.ValidationError{Field: "jsonData", Message: "jsonData is required"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "jsonData is required",
		},
		{
			name:           "wrapped ValidationError returns 400",
			input:          fmt.Errorf("store: %w", &errors.ValidationError{Field: "jsonData", Message: "bad"}),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "bad",
		},
		{
			name:           "unknown error returns 500 without leaking detail",
			input:          fmt.Errorf("disk on fire"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := toHumaError(tt.input)
			require.Error(t, err)

			envErr, ok := err.(*EnvelopeError)
			require.True(t, ok, "expected *EnvelopeError, got %T", err)
			assert.Equal(t, tt.expectedStatus, envErr.GetStatus())
			assert.Equal(t, tt.expectedMsg, envErr.Message)
			assert.False(t, envErr.Success)
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.NoError(t, toHumaError(nil))
}

func TestNewEnvelopeError(t *testing.T) {
	err := NewEnvelopeError(http.StatusUnprocessableEntity, "validation failed", fmt.Errorf("a"), nil, fmt.Errorf("b"))
	assert.Equal(t, http.StatusUnprocessableEntity, err.GetStatus())
	assert.Equal(t, "validation failed: a; b", err.Error())

	err = NewEnvelopeError(http.StatusTeapot, "")
	assert.Equal(t, "I'm a teapot", err.Error())
}

// useEnvelopeErrors installs the envelope error model for the duration of a test.
func useEnvelopeErrors(t *testing.T) {
	t.Helper()
	previous := huma.NewError
	huma.NewError = NewEnvelopeError
	t.Cleanup(func() { huma.NewError = previous })
}
