package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types
var (
	// Registration errors
	ErrTokenFieldsRequired = NewBaseError(
		http.StatusBadRequest,
		"TOKEN_FIELDS_REQUIRED",
		"`userId` and `token` required",
		"",
	)

	// Alert errors
	ErrAlertUserIDMissing = NewBaseError(
		http.StatusBadRequest,
		"ALERT_USER_ID_MISSING",
		"Missing `tags.userId` in payload",
		"",
	)

	// Validation-related errors
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Malformed request body",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// RepositoryError wraps a storage failure, implementing the AppError interface
type RepositoryError struct {
	err     error
	details string
}

// NewRepositoryError creates a storage-related error
func NewRepositoryError(err error, details string) AppError {
	return &RepositoryError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	return errors.Wrap(e.err, "token repository failed").Error()
}

// Unwrap exposes the storage error to errors.Is and errors.As
func (e *RepositoryError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *RepositoryError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *RepositoryError) ErrorCode() string {
	return "REPOSITORY_FAILED"
}

// Message returns the user-friendly error message
func (e *RepositoryError) Message() string {
	return "Token storage failed"
}

// Details returns detailed error information
func (e *RepositoryError) Details() string {
	return e.details
}
