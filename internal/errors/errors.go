// Package errors defines the typed error taxonomy shared by the daemon client,
// the decision engines, and the local data layer.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a remote resource (job, schedule, zone) was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeAuthentication indicates the daemon rejected the credentials or session token.
	ErrCodeAuthentication ErrorCode = "authentication"
	// ErrCodeAPI indicates any other non-success daemon response or a transport failure.
	ErrCodeAPI ErrorCode = "api"
	// ErrCodeValidation indicates invalid input or a malformed response shape.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeDecoding indicates a wire payload violated the data model's
	// enumerations or required-field contract.
	ErrCodeDecoding ErrorCode = "decoding"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeInternal indicates an internal client error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and
// optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for
	// validation and decoding errors)
	Field string
	// StatusCode is the HTTP status returned by the daemon for api errors;
	// zero when the failure happened below the HTTP layer.
	StatusCode int
	// Response holds the daemon's structured error payload when one was returned.
	Response json.RawMessage
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Authentication creates a new Authentication error.
func Authentication(message string) *AppError {
	return &AppError{
		Code:    ErrCodeAuthentication,
		Message: message,
	}
}

// API creates a new API error carrying the daemon's HTTP status and, when
// present, its structured error payload.
func API(statusCode int, message string, response json.RawMessage) *AppError {
	return &AppError{
		Code:       ErrCodeAPI,
		Message:    message,
		StatusCode: statusCode,
		Response:   response,
	}
}

// APITransport wraps a transport-level failure (connection refused, timeout)
// as an API error with no HTTP status. Transport failures must never surface
// as NotFound or Authentication.
func APITransport(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeAPI,
		Message: message,
		Cause:   err,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Decoding creates a new Decoding error naming the offending field.
func Decoding(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeDecoding,
		Message: message,
		Field:   field,
	}
}

// Decodingf creates a new Decoding error with formatted message.
func Decodingf(field, format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeDecoding,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsAuthentication checks if an error is an Authentication error.
func IsAuthentication(err error) bool {
	return isCode(err, ErrCodeAuthentication)
}

// IsAPI checks if an error is an API error.
func IsAPI(err error) bool {
	return isCode(err, ErrCodeAPI)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsDecoding checks if an error is a Decoding error.
func IsDecoding(err error) bool {
	return isCode(err, ErrCodeDecoding)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// StatusCode returns the HTTP status carried by an API error, or zero.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}
