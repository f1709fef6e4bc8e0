package handler

import (
	"log/slog"
	"net/http"

	"pushrelay/internal/delivery/api/response"
	deliverycontext "pushrelay/internal/delivery/context"
	domainerrors "pushrelay/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bodyChecker is implemented by requests whose JSON needs checks Bind cannot express.
type bodyChecker interface {
	checkBody() error
}

// invalidRequestFunc renders the endpoint-specific response for a body that failed validation.
type invalidRequestFunc func(c echo.Context, err error) error

// decodeRequest binds and validates req. It reports false when a response has
// already been written, in which case the returned error is the render result.
func decodeRequest(c echo.Context, logger *slog.Logger, req any, invalid invalidRequestFunc) (bool, error) {
	log := deliverycontext.GetLoggerOrDefault(c.Request().Context(), logger)

	if err := c.Bind(req); err != nil {
		log.Debug("Malformed request body", slog.Any("error", err))

		return false, invalidInput(c, nil)
	}

	if checker, ok := req.(bodyChecker); ok {
		if err := checker.checkBody(); err != nil {
			log.Debug("Rejected request body", slog.Any("error", err))

			return false, invalidInput(c, err.Error())
		}
	}

	if err := c.Validate(req); err != nil {
		log.Debug("Request validation failed", slog.Any("error", err))

		return false, invalid(c, err)
	}

	return true, nil
}

func invalidInput(c echo.Context, details any) error {
	appErr := domainerrors.ErrInvalidInput

	return response.BadRequestWithDetails(c, appErr.ErrorCode(), appErr.Message(), details)
}

// renderError logs server-side failures before rendering err.
func renderError(c echo.Context, logger *slog.Logger, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() >= http.StatusInternalServerError {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), logger).Error("Request failed",
			slog.Any("error", err),
			slog.String("code", appErr.ErrorCode()),
			slog.String("path", c.Request().URL.Path),
		)
	}

	return response.HandleAppError(c, err)
}
