// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors into the {success:false, error} envelope with a matching status

package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sagar-developer08/tree-json/core/errors"
)

// EnvelopeError is the body of every failed request. It replaces huma's
// problem+json model so clients read failures the same way as successes.
type EnvelopeError struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *EnvelopeError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *EnvelopeError) GetStatus() int {
	return e.Status
}

// NewEnvelopeError is installed as huma.NewError. Details from errs are
// appended to msg so request validation failures stay readable.
func NewEnvelopeError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &EnvelopeError{Status: status, Message: msg}
}

// EnvelopeConfig is huma.DefaultConfig without the schema link transformer,
// which would add a "$schema" member to every response body.
func EnvelopeConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil
	config.Transformers = nil
	config.OpenAPI.OnAddOperation = nil
	return config
}

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.IsValidation(err), errors.IsConversion(err):
		return huma.Error400BadRequest(validationMessage(err))
	default:
		return huma.Error500InternalServerError("Internal server error")
	}
}

func validationMessage(err error) string {
	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}
