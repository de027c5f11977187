package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing             ErrorType = "PARSING"
	ErrTypeMalformedInput      ErrorType = "MALFORMED_INPUT"
	ErrTypeInsufficientHistory ErrorType = "INSUFFICIENT_HISTORY"
	ErrTypeEmptyRange          ErrorType = "EMPTY_RANGE"
	ErrTypeValidation          ErrorType = "VALIDATION"
	ErrTypeConfig              ErrorType = "CONFIG"
	ErrTypeStorage             ErrorType = "STORAGE"
	ErrTypeNotFound            ErrorType = "NOT_FOUND"
)

// Sentinels for errors.Is checks on the pipeline's fatal and non-fatal
// conditions. The constructors below wrap these so callers can branch
// without inspecting error types.
var (
	// ErrMalformedInput marks a source whose required identifying columns
	// are absent. Fatal for the whole run.
	ErrMalformedInput = errors.New("malformed input source")
	// ErrInsufficientHistory marks a dataset with no exact decade-earlier
	// year for trend analysis. Fatal for the trend tables only.
	ErrInsufficientHistory = errors.New("insufficient history for trend analysis")
	// ErrEmptyRange marks a year filter that left no records. Non-fatal:
	// result tables come back empty.
	ErrEmptyRange = errors.New("no data in requested year range")
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

// Helper functions for common error types

// NewMalformedInputError reports a source missing its country column.
// The offending source identifier travels in the error context.
func NewMalformedInputError(source string, cause error) *AppError {
	if cause == nil {
		cause = ErrMalformedInput
	} else {
		cause = fmt.Errorf("%w: %w", ErrMalformedInput, cause)
	}
	return NewAppError(ErrTypeMalformedInput,
		fmt.Sprintf("source %q has no recognizable country column", source),
		cause).WithContext("source", source)
}

// NewInsufficientHistoryError reports a missing decade-earlier comparison year.
func NewInsufficientHistoryError(referenceYear, comparisonYear int) *AppError {
	return NewAppError(ErrTypeInsufficientHistory,
		fmt.Sprintf("no data for comparison year %d (reference year %d)", comparisonYear, referenceYear),
		ErrInsufficientHistory).
		WithContext("reference_year", referenceYear).
		WithContext("comparison_year", comparisonYear)
}

// NewEmptyRangeError reports a year filter that excluded every record.
func NewEmptyRangeError(start, end int) *AppError {
	return NewAppError(ErrTypeEmptyRange,
		fmt.Sprintf("year range [%d, %d] matches no records", start, end),
		ErrEmptyRange).
		WithContext("start_year", start).
		WithContext("end_year", end)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
