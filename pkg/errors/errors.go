package errors

import (
	"errors"
	"fmt"
)

// ValidationError is a local input error. It is raised before any network
// call is made and is always surfaced directly to the user.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validation creates a new ValidationError
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// APIError is a failure reported by the SafeRide backend, either as a
// non-success envelope or a transport-level problem.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *APIError) Unwrap() error {
	return e.Err
}

// API creates a new APIError
func API(status int, message string, err error) *APIError {
	if message == "" {
		message = "request failed"
	}
	return &APIError{Status: status, Message: message, Err: err}
}

// Terminal payment outcomes. Both end the payment flow in a distinct
// failure state; neither may ever be treated as success.
var (
	ErrPaymentFailed  = errors.New("payment failed or was cancelled")
	ErrPaymentTimeout = errors.New("payment timed out")
)

// ErrNoSession is returned by authenticated operations while signed out.
var ErrNoSession = errors.New("no active session")

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsAPIError attempts to convert an error to an APIError
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
