// Package errors provides structured error types for the Gridfare agent.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP transport
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_REGISTERED / DUPLICATE_*: Entrypoint registry failures
//   - UPSTREAM_* / NETWORK_*: Failures reaching the statistics API
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid season: %s", season)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidSeason Code = "INVALID_SEASON"
	ErrCodeInvalidRound  Code = "INVALID_ROUND"
	ErrCodeInvalidDriver Code = "INVALID_DRIVER_ID"

	// Registry errors
	ErrCodeNotRegistered Code = "NOT_REGISTERED"
	ErrCodeDuplicateKey  Code = "DUPLICATE_ENTRYPOINT"

	// Upstream errors
	ErrCodeUpstreamStatus Code = "UPSTREAM_STATUS"
	ErrCodeNetwork        Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// UpstreamError reports a non-success status code returned by the
// statistics API. A failed request is fatal to the current dispatch and is
// never retried.
type UpstreamError struct {
	StatusCode int    // HTTP status returned by the upstream API
	URL        string // Request URL (optional, for diagnostics)
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("upstream returned status %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Code returns the error code for this error type.
func (e *UpstreamError) Code() Code {
	return ErrCodeUpstreamStatus
}

// ValidationError reports one or more input fields that failed schema
// validation. It is fatal to the dispatch call and never retried.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes a single offending input field.
type FieldError struct {
	Field  string // Input field name
	Reason string // Why the field was rejected
}

// Error implements the error interface, enumerating every offending field.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Code returns the error code for this error type.
func (e *ValidationError) Code() Code {
	return ErrCodeInvalidInput
}

// Add appends a field failure and returns the receiver for chaining.
func (e *ValidationError) Add(field, reason string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
	return e
}

// Empty reports whether no field failures have been recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}
