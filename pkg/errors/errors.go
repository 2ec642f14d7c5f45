// Package errors provides structured error types for archviz.
//
// This package defines error codes and types that enable:
//   - Consistent error handling between the diagram model, renderers and CLI
//   - Machine-readable error codes for programmatic handling
//   - Diagnostic output (renderer stderr) carried next to the error
//
// # Error Codes
//
// Codes name the failure class rather than the call site:
//   - UNKNOWN_NODE, DUPLICATE_NODE, UNBALANCED_CLUSTER, FINALIZED: graph model misuse
//   - RENDER_FAILED, RENDER_TIMEOUT: the external renderer did not produce an image
//   - IO_FAILURE: output or intermediate files could not be written
//   - INVALID_*: configuration and name validation
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "edge references %q", id)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // Handle model error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
//
// A *Error also matches another *Error with the same code under the standard
// library's errors.Is, so package-level sentinels built with [New] can be
// compared directly.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph model errors
	ErrCodeUnknownNode       Code = "UNKNOWN_NODE"
	ErrCodeDuplicateNode     Code = "DUPLICATE_NODE"
	ErrCodeUnbalancedCluster Code = "UNBALANCED_CLUSTER"
	ErrCodeFinalized         Code = "FINALIZED"

	// Render errors
	ErrCodeRenderFailed  Code = "RENDER_FAILED"
	ErrCodeRenderTimeout Code = "RENDER_TIMEOUT"

	// Filesystem errors
	ErrCodeIO Code = "IO_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeUnknownDiagram  Code = "UNKNOWN_DIAGRAM"
	ErrCodeRendererMissing Code = "RENDERER_MISSING"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Detail  string // Diagnostic output from an external tool (optional)
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

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
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

// WithDetail attaches diagnostic output and returns e.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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

// Detail returns the first non-empty diagnostic detail in the error chain.
func Detail(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Detail != "" {
			return e.Detail
		}
		err = e.Cause
	}
	return ""
}
