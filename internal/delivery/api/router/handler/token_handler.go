package handler

import (
	"log/slog"

	"pushrelay/internal/delivery/api/response"
	"pushrelay/internal/delivery/api/validator"
	domainerrors "pushrelay/internal/domain/errors"
	"pushrelay/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TokenHandlerParams holds dependencies for TokenHandler, injected by Fx.
type TokenHandlerParams struct {
	fx.In

	TokenUC usecase.TokenUsecase
	Logger  *slog.Logger
}

// TokenHandler serves push token registration
type TokenHandler struct {
	tokenUC usecase.TokenUsecase
	logger  *slog.Logger
}

// NewTokenHandler is the constructor for TokenHandler
func NewTokenHandler(params TokenHandlerParams) *TokenHandler {
	return &TokenHandler{
		tokenUC: params.TokenUC,
		logger:  params.Logger,
	}
}

// SavePushTokenRequest represents the request body for registering a push token
type SavePushTokenRequest struct {
	UserID string `json:"userId" validate:"required"`
	Token  string `json:"token" validate:"required"`
}

// RegisterDeviceRequest is the body the mobile app sends; the device ID doubles as the user ID
type RegisterDeviceRequest struct {
	DeviceID  string `json:"device_id_str" validate:"required"`
	ExpoToken string `json:"expo_token" validate:"required"`
}

// SavePushToken handles POST /api/save-push-token
func (h *TokenHandler) SavePushToken(c echo.Context) error {
	var req SavePushTokenRequest
	if ok, err := decodeRequest(c, h.logger, &req, tokenFieldsRequired); !ok {
		return err
	}

	return h.register(c, req.UserID, req.Token)
}

// RegisterDevice handles POST /devices/register
func (h *TokenHandler) RegisterDevice(c echo.Context) error {
	var req RegisterDeviceRequest
	if ok, err := decodeRequest(c, h.logger, &req, tokenFieldsRequired); !ok {
		return err
	}

	return h.register(c, req.DeviceID, req.ExpoToken)
}

func (h *TokenHandler) register(c echo.Context, userID, token string) error {
	if err := h.tokenUC.RegisterToken(c.Request().Context(), userID, token); err != nil {
		return renderError(c, h.logger, err)
	}

	return response.OK(c)
}

func tokenFieldsRequired(c echo.Context, err error) error {
	appErr := domainerrors.ErrTokenFieldsRequired

	return response.BadRequestWithDetails(c, appErr.ErrorCode(), appErr.Message(), validator.FieldErrors(err))
}
