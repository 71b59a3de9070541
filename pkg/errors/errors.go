// Package errors provides structured error handling for the engine
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

// Error codes surfaced by the composition engine. Everything recoverable is
// reported as structured output data instead; these cover hard failures only.
const (
	CodeInvalidInput      ErrorCode = "INVALID_INPUT"
	CodeEmptyMeal         ErrorCode = "EMPTY_MEAL"
	CodeMixedUnitFamilies ErrorCode = "MIXED_UNIT_FAMILIES"
	CodeInvalidConfig     ErrorCode = "INVALID_CONFIG"
	CodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(details string) *AppError {
	return NewAppError(CodeInvalidInput, "Invalid input", details)
}

// NewEmptyMealError creates an error for a meal with no recipes
func NewEmptyMealError() *AppError {
	return NewAppError(CodeEmptyMeal, "Meal contains no recipes", "")
}

// NewMixedUnitFamiliesError creates an aggregator invariant violation error.
// A consolidation group must never span more than one unit family.
func NewMixedUnitFamiliesError(name string, families []string) *AppError {
	return NewAppError(
		CodeMixedUnitFamilies,
		"Consolidation group mixes unit families",
		fmt.Sprintf("ingredient %q spans families %s", name, strings.Join(families, ", ")),
	).WithMetadata("ingredient", name).WithMetadata("families", families)
}

// NewInvalidConfigError creates a configuration validation error
func NewInvalidConfigError(details string) *AppError {
	return NewAppError(CodeInvalidConfig, "Invalid configuration", details)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}
