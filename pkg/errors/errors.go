// Package errors defines the application error taxonomy.
//
// Every fault in the request pipeline is represented as an *AppError carrying a
// message and an HTTP status code. The "fail" vs "error" classification is
// derived from the status code on demand, never stored, so the two can not
// drift apart.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// FieldViolation describes a single schema violation reported by the
// validation stage.
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// AppError is the application-specific error type used by every layer.
type AppError struct {
	Message    string
	StatusCode int
	Violations []FieldViolation
	Cause      error
	StackTrace string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d: %s (caused by: %v)", e.StatusCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Status derives the fault class from the status code: "fail" for client
// faults (4xx), "error" for everything else.
func (e *AppError) Status() string {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return "fail"
	}
	return "error"
}

// WithCause attaches an underlying error for logging; it is never exposed to
// clients.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// captureStackTrace records the call stack below the constructor.
func captureStackTrace() string {
	const depth = 16
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

func newAppError(message string, status int) *AppError {
	return &AppError{
		Message:    message,
		StatusCode: status,
		StackTrace: captureStackTrace(),
	}
}

// NewBadRequest creates a 400 error.
func NewBadRequest(message string) *AppError {
	return newAppError(message, http.StatusBadRequest)
}

// NewUnauthorized creates a 401 error.
func NewUnauthorized(message string) *AppError {
	return newAppError(message, http.StatusUnauthorized)
}

// NewForbidden creates a 403 error.
func NewForbidden(message string) *AppError {
	return newAppError(message, http.StatusForbidden)
}

// NewNotFound creates a 404 error.
func NewNotFound(message string) *AppError {
	return newAppError(message, http.StatusNotFound)
}

// NewPayloadTooLarge creates a 413 error, used by the body size ceiling.
func NewPayloadTooLarge(message string) *AppError {
	return newAppError(message, http.StatusRequestEntityTooLarge)
}

// NewTooManyRequests creates a 429 error.
func NewTooManyRequests(message string) *AppError {
	return newAppError(message, http.StatusTooManyRequests)
}

// NewInternal creates a 500 error.
func NewInternal(message string) *AppError {
	return newAppError(message, http.StatusInternalServerError)
}

// NewServiceUnavailable creates a 503 error, used by the timeout stage.
func NewServiceUnavailable(message string) *AppError {
	return newAppError(message, http.StatusServiceUnavailable)
}

// NewValidationFailed creates a 400 error carrying the full violation list
// collected by the validation stage.
func NewValidationFailed(violations []FieldViolation) *AppError {
	err := newAppError("Validation failed", http.StatusBadRequest)
	err.Violations = violations
	return err
}

// GetAppError extracts an *AppError from an error chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFound checks whether an error is a 404 application error.
func IsNotFound(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.StatusCode == http.StatusNotFound
}

// Wrap converts an arbitrary error into an internal AppError, preserving an
// existing AppError's classification.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}
	return NewInternal(message).WithCause(err)
}
