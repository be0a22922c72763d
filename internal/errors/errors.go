package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies a failure by the operation family that produced it
type ErrorType string

const (
	ErrTypeComputation ErrorType = "COMPUTATION"
	ErrTypeConversion  ErrorType = "CONVERSION"
	ErrTypeParse       ErrorType = "PARSE"
	ErrTypeRange       ErrorType = "RANGE"
	ErrTypeSchema      ErrorType = "SCHEMA"
	ErrTypeStorage     ErrorType = "STORAGE"
	ErrTypeConfig      ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for stderrors.As(err, &appErr) {
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
		appErr = nil
		if err == nil {
			return false
		}
	}
	return false
}

// Helper functions for common error types

// NewComputationError creates an error for a statistic that cannot be produced
func NewComputationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeComputation, message, cause)
}

// NewConversionError creates a type-coercion error
func NewConversionError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConversion, message, cause)
}

// NewParseError creates a text-parsing error
func NewParseError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParse, message, cause)
}

// NewRangeError creates an out-of-range argument error
func NewRangeError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRange, message, cause)
}

// NewSchemaError creates a column/shape mismatch error
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
