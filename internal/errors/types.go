package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeUpstream   ErrorType = "upstream"
	ErrorTypeTemplate   ErrorType = "template"
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeMethod     ErrorType = "method_not_allowed"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeOpenAPI    ErrorType = "openapi"
	ErrorTypeMCP        ErrorType = "mcp"
)

// RelayError represents a structured error with context
type RelayError struct {
	Type    ErrorType
	Message string
	Context map[string]interface{}
	Cause   error
}

// Error implements the error interface
func (e *RelayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping
func (e *RelayError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a specific type
func (e *RelayError) Is(target error) bool {
	if targetErr, ok := target.(*RelayError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *RelayError) WithContext(key string, value interface{}) *RelayError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new RelayError
func New(errType ErrorType, message string) *RelayError {
	return &RelayError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *RelayError {
	return &RelayError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
		Cause:   err,
	}
}

// Wrapf wraps an existing error with formatted message
func Wrapf(err error, errType ErrorType, format string, args ...interface{}) *RelayError {
	return Wrap(err, errType, fmt.Sprintf(format, args...))
}

// Newf creates a new RelayError with formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *RelayError {
	return New(errType, fmt.Sprintf(format, args...))
}

// As finds the outermost RelayError in err's chain
func As(err error) (*RelayError, bool) {
	var rErr *RelayError
	if stderrors.As(err, &rErr) {
		return rErr, true
	}
	return nil, false
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	if rErr, ok := As(err); ok {
		return rErr.Type == errType
	}
	return false
}

// GetType returns the error type, or ErrorTypeInternal if not a RelayError
func GetType(err error) ErrorType {
	if rErr, ok := As(err); ok {
		return rErr.Type
	}
	return ErrorTypeInternal
}

// GetContext returns context information from the error
func GetContext(err error) map[string]interface{} {
	if rErr, ok := As(err); ok {
		return rErr.Context
	}
	return nil
}
