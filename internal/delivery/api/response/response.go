// Package response renders the JSON bodies returned by the API.
package response

import (
	"net/http"

	deliverycontext "pushrelay/internal/delivery/context"
	"pushrelay/internal/domain/entity"
	domainerrors "pushrelay/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StatusResponse acknowledges a request, optionally with a note
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ReceiptsResponse carries the receipts collected while relaying an alert
type ReceiptsResponse struct {
	Success  bool             `json:"success"`
	Receipts []entity.Receipt `json:"receipts"`
}

// MessageResponse is the body of informational endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "INVALID_INPUT"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// OK acknowledges a request that needs no further data.
func OK(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Success: true})
}

// OKWithMessage acknowledges a request with an explanatory message.
func OKWithMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, StatusResponse{Success: true, Message: message})
}

// Receipts returns the receipts of a relayed alert; an empty list is rendered as [].
func Receipts(c echo.Context, receipts []entity.Receipt) error {
	if receipts == nil {
		receipts = []entity.Receipt{}
	}

	return c.JSON(http.StatusOK, ReceiptsResponse{Success: true, Receipts: receipts})
}

// Message returns an informational body.
func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// details are never exposed on server errors
	if statusCode >= http.StatusInternalServerError {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// BadRequestWithDetails returns a 400 error with details
func BadRequestWithDetails(c echo.Context, errorCode string, message string, details any) error {
	return Error(c, http.StatusBadRequest, errorCode, message, details)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// HandleAppError renders domain errors and passes anything else on to the error handler
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		var details any
		if appErr.Details() != "" {
			details = appErr.Details()
		}

		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
	}

	return errors.WithStack(err)
}
