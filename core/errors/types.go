// ABOUTME: Custom error types for the editing core
// ABOUTME: Each failure mode is a named type so callers choose notification and logging behaviour

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ConversionError is raised when text does not parse under its declared format,
// or a canonical value cannot be rendered into a target format.
type ConversionError struct {
	// Format is the format tag the conversion was attempted with
	Format string

	// Op is "parse" or "render"
	Op string

	// Line and Column locate the failure (1-based); zero when unknown
	Line   int
	Column int

	// Snippet is the offending source line with a caret under the failure, when known
	Snippet string

	Err error
}

// Error implements the error interface
func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s %s error", e.Format, e.Op)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
		if e.Column > 0 {
			msg = fmt.Sprintf("%s, column %d", msg, e.Column)
		}
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying parser error
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Detail returns the most precise description available: the snippet when the
// parser located the failure, otherwise the message.
func (e *ConversionError) Detail() string {
	if e.Snippet != "" {
		return e.Snippet
	}
	return e.Error()
}

// NetworkError represents a failure to reach a remote endpoint at all
type NetworkError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RemoteAPIError represents an application-level failure reported by the document API
type RemoteAPIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *RemoteAPIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("document API error: %s", e.Message)
	}
	return fmt.Sprintf("document API error: %d - %s", e.StatusCode, e.Message)
}

// FetchURLError represents a malformed or unreachable external JSON source
type FetchURLError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *FetchURLError) Error() string {
	return fmt.Sprintf("failed to fetch document from %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *FetchURLError) Unwrap() error {
	return e.Err
}

// StaleResultError reports an asynchronous result discarded because the state
// it was computed from changed while it was in flight.
type StaleResultError struct {
	Op string
}

// Error implements the error interface
func (e *StaleResultError) Error() string {
	return fmt.Sprintf("%s result discarded: document changed while the request was in flight", e.Op)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsConversion checks if an error is a ConversionError
func IsConversion(err error) bool {
	var conversionErr *ConversionError
	return errors.As(err, &conversionErr)
}

// IsNetwork checks if an error is a NetworkError
func IsNetwork(err error) bool {
	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}

// IsRemoteAPI checks if an error is a RemoteAPIError
func IsRemoteAPI(err error) bool {
	var apiErr *RemoteAPIError
	return errors.As(err, &apiErr)
}

// IsFetchURL checks if an error is a FetchURLError
func IsFetchURL(err error) bool {
	var fetchErr *FetchURLError
	return errors.As(err, &fetchErr)
}

// IsStale checks if an error is a StaleResultError
func IsStale(err error) bool {
	var staleErr *StaleResultError
	return errors.As(err, &staleErr)
}

// AsConversion extracts a ConversionError from err's chain
func AsConversion(err error) (*ConversionError, bool) {
	var conversionErr *ConversionError
	if errors.As(err, &conversionErr) {
		return conversionErr, true
	}
	return nil, false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
