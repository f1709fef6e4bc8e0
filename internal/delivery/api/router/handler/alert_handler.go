package handler

import (
	"log/slog"
	"sort"

	"pushrelay/internal/delivery/api/response"
	"pushrelay/internal/domain/entity"
	domainerrors "pushrelay/internal/domain/errors"
	"pushrelay/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AlertHandlerParams holds dependencies for AlertHandler, injected by Fx.
type AlertHandlerParams struct {
	fx.In

	AlertUC usecase.AlertUsecase
	Logger  *slog.Logger
}

// AlertHandler receives monitoring webhooks
type AlertHandler struct {
	alertUC usecase.AlertUsecase
	logger  *slog.Logger
}

// NewAlertHandler is the constructor for AlertHandler
func NewAlertHandler(params AlertHandlerParams) *AlertHandler {
	return &AlertHandler{
		alertUC: params.AlertUC,
		logger:  params.Logger,
	}
}

// InfluxAlertRequest is the webhook body posted by InfluxDB/Kapacitor checks
type InfluxAlertRequest struct {
	ID      string             `json:"id"`
	Message string             `json:"message"`
	Time    string             `json:"time"`
	Tags    map[string]string   `json:"tags" validate:"required"`
	Fields  map[string]*float64 `json:"fields"`
}

// checkBody rejects null field values, which Bind would otherwise accept.
func (r *InfluxAlertRequest) checkBody() error {
	var nulls []string
	for name, value := range r.Fields {
		if value == nil {
			nulls = append(nulls, name)
		}
	}
	if len(nulls) == 0 {
		return nil
	}
	sort.Strings(nulls)

	return errors.Errorf("fields.%s must be a number, got null", nulls[0])
}

func (r *InfluxAlertRequest) toEntity() *entity.Alert {
	var fields map[string]float64
	if r.Fields != nil {
		fields = make(map[string]float64, len(r.Fields))
		for name, value := range r.Fields {
			fields[name] = *value
		}
	}

	return &entity.Alert{
		ID:      r.ID,
		Message: r.Message,
		Time:    r.Time,
		Tags:    r.Tags,
		Fields:  fields,
	}
}

// InfluxAlert handles POST /api/influx-alerts. Delivery failures never change
// the status code; only a malformed body or missing user does.
func (h *AlertHandler) InfluxAlert(c echo.Context) error {
	var req InfluxAlertRequest
	if ok, err := decodeRequest(c, h.logger, &req, alertUserIDMissing); !ok {
		return err
	}

	result, err := h.alertUC.RelayAlert(c.Request().Context(), req.toEntity())
	if err != nil {
		return renderError(c, h.logger, err)
	}

	if result.NoTokens {
		return response.OKWithMessage(c, usecase.NoTokensMessage)
	}

	return response.Receipts(c, result.Receipts)
}

func alertUserIDMissing(c echo.Context, _ error) error {
	return response.HandleAppError(c, domainerrors.ErrAlertUserIDMissing)
}
