// Package errors provides the unified error type and factory functions for
// gem-flux-mcp. Every layer (domain, app, infrastructure, interfaces) uses
// AppError as the single carrier for structured error information, so the
// MCP tool dispatch layer can map any error into the seven-way error_type
// taxonomy without type-switching on ad-hoc error values.
package errors

import (
	"errors"
	"fmt"
)

// AppError is the single structured error type used throughout gem-flux-mcp.
// It satisfies the standard error interface and supports Go 1.13+ error
// wrapping so errors.Is / errors.As / errors.Unwrap work transparently
// across layers.
//
// Usage:
//
//	return errors.NotFound("model draftA.draft not found")
//	return errors.Wrap(solverErr, errors.CodeSolverFailure, "FBA solve failed")
//	return errors.InvalidParam("mediaId must reference an existing media")
type AppError struct {
	// Code is the typed error code that uniquely identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description, suitable for
	// inclusion in a tool call's error response.
	Message string

	// Detail carries supplementary context (ids, bounds, equations) that aids
	// debugging without leaking internals the caller didn't ask for.
	Detail string

	// Cause is the underlying error that triggered this AppError, enabling
	// errors.Is / errors.As traversal of the full error chain.
	Cause error

	// Stack contains the formatted call-stack captured at creation time. It
	// is populated by New and Wrap but omitted under the "nostack" build tag.
	// Stack is intentionally excluded from Error() to keep tool-facing error
	// messages clean; structured logging reads the field directly.
	Stack string
}

// Error implements the standard error interface.
// Format: "[<code_name>(<code_int>)] <message>: <detail>", detail omitted
// when empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s(%d)] %s: %s", e.Code.String(), int(e.Code), e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s(%d)] %s", e.Code.String(), int(e.Code), e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a shallow copy of the receiver with Detail set. Safe to
// call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// New constructs a fresh AppError with the given code and message. A
// call-stack snapshot is captured automatically (unless compiled with
// -tags nostack).
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Stack: captureStack(1)}
}

// Wrap constructs an AppError that wraps an existing error. If err is nil,
// Wrap returns nil so it can be used inline. When err is already an
// *AppError and code is CodeUnknown the original code is preserved,
// preventing loss of the original classification as errors cross layers.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{Code: code, Message: message, Cause: err, Stack: captureStack(1)}
}

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsNotFound reports whether any error in err's chain belongs to the
// not_found_error taxonomy class.
func IsNotFound(err error) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code.Taxonomy() == "not_found_error" {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsInfeasible reports whether any error in err's chain belongs to the
// infeasibility_error taxonomy class.
func IsInfeasible(err error) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code.Taxonomy() == "infeasibility_error" {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the ErrorCode from the first *AppError found in err's
// chain. If no *AppError is present, CodeUnknown is returned; a nil err
// returns CodeOK.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// Taxonomy extracts the error_type string a tool response should carry for
// err. Non-AppError errors are reported as "server_error".
func Taxonomy(err error) string {
	return GetCode(err).Taxonomy()
}

// NotFound constructs a CodeNotFound AppError.
func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Stack: captureStack(1)}
}

// InvalidParam constructs a CodeInvalidParam AppError.
func InvalidParam(message string) *AppError {
	return &AppError{Code: CodeInvalidParam, Message: message, Stack: captureStack(1)}
}

// Infeasible constructs a CodeInfeasible AppError, used when a solver
// reaches a definitive infeasible/unbounded result rather than failing.
func Infeasible(message string) *AppError {
	return &AppError{Code: CodeInfeasible, Message: message, Stack: captureStack(1)}
}

// Unauthorized constructs a CodeUnauthorized AppError.
func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Stack: captureStack(1)}
}

// Forbidden constructs a CodeForbidden AppError.
func Forbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message, Stack: captureStack(1)}
}

// Internal constructs a CodeInternal AppError. Use for unexpected
// server-side failures where no more specific code applies; always log the
// underlying cause before or after calling Internal.
func Internal(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Stack: captureStack(1)}
}

// Conflict constructs a CodeConflict AppError.
func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Stack: captureStack(1)}
}

// RateLimit constructs a CodeRateLimit AppError.
func RateLimit(message string) *AppError {
	return &AppError{Code: CodeRateLimit, Message: message, Stack: captureStack(1)}
}

// Unavailable constructs a CodeUnavailable AppError, used when a circuit
// breaker is open or a backing service has no capacity.
func Unavailable(message string) *AppError {
	return &AppError{Code: CodeUnavailable, Message: message, Stack: captureStack(1)}
}
