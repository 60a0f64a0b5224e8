// Package errors provides structured error types for the stratum CLI and API.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_LAYER, STATIC_CONFLICT, CYCLE: Constraint graph failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLayer, "invalid layer name: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidLayer) {
//	    // Handle validation error
//	}
//
//	// Attach a code to errors from the solver
//	err = errors.Wrap(errors.Classify(solveErr), solveErr, "solve %s", path)
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/matzehuels/stratum/pkg/layers"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidLayer  Code = "INVALID_LAYER"

	// Constraint graph errors
	ErrCodeDuplicateLayer Code = "DUPLICATE_LAYER"
	ErrCodeUnknownLayer   Code = "UNKNOWN_LAYER"
	ErrCodeStaticConflict Code = "STATIC_CONFLICT"
	ErrCodeCycle          Code = "CYCLE"

	// Request limits
	ErrCodePayloadTooLarge Code = "PAYLOAD_TOO_LARGE"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// Classify picks the code for an error coming out of the layers package or
// the file system. A request body over its size limit is
// ErrCodePayloadTooLarge whatever wraps it; otherwise an existing *Error keeps
// its code. Anything unrecognised
// is ErrCodeInternal.
func Classify(err error) Code {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrCodePayloadTooLarge
	}
	if code := GetCode(err); code != "" {
		return code
	}
	switch {
	case errors.Is(err, layers.ErrStaticConflict):
		return ErrCodeStaticConflict
	case errors.Is(err, layers.ErrCycle):
		return ErrCodeCycle
	case errors.Is(err, layers.ErrDuplicateName):
		return ErrCodeDuplicateLayer
	case errors.Is(err, layers.ErrUnknownLayer):
		return ErrCodeUnknownLayer
	case errors.Is(err, layers.ErrInvalidName):
		return ErrCodeInvalidLayer
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeFileNotFound
	}
	return ErrCodeInternal
}

// HTTPStatus maps an error code to the status the API responds with.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidLayer,
		ErrCodeDuplicateLayer, ErrCodeUnknownLayer:
		return http.StatusBadRequest
	case ErrCodeStaticConflict, ErrCodeCycle:
		return http.StatusUnprocessableEntity
	case ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
