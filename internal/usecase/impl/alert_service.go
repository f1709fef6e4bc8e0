package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "pushrelay/internal/delivery/context"
	"pushrelay/internal/domain/entity"
	domainerrors "pushrelay/internal/domain/errors"
	"pushrelay/internal/domain/repository"
	"pushrelay/internal/domain/service"
	"pushrelay/internal/usecase"
)

// alertService implements the AlertUsecase interface.
type alertService struct {
	tokenRepo   repository.TokenRepository
	pushService service.PushService
	logger      *slog.Logger
}

// NewAlertService is the constructor for alertService.
func NewAlertService(
	tokenRepo repository.TokenRepository,
	pushService service.PushService,
	logger *slog.Logger,
) usecase.AlertUsecase {
	return &alertService{
		tokenRepo:   tokenRepo,
		pushService: pushService,
		logger:      logger,
	}
}

func (srv *alertService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RelayAlert delivers the alert to each of the user's tokens in turn.
func (srv *alertService) RelayAlert(ctx context.Context, alert *entity.Alert) (*usecase.RelayResult, error) {
	userID := strings.TrimSpace(alert.UserID())
	if userID == "" {
		return nil, domainerrors.ErrAlertUserIDMissing
	}

	logger := srv.log(ctx).With(slog.String("user_id", userID), slog.String("alert_id", alert.ID))

	tokens, err := srv.tokenRepo.FindTokensByUser(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewRepositoryError(err, "failed to look up push tokens")
	}

	if len(tokens) == 0 {
		logger.Info("Alert received for user without push tokens")

		return &usecase.RelayResult{NoTokens: true}, nil
	}

	notification := alert.Notification()
	result := &usecase.RelayResult{Receipts: make([]entity.Receipt, 0, len(tokens))}

	for _, token := range tokens {
		result.Attempted++

		receipts, err := srv.pushService.Publish(ctx, token, notification)
		if err != nil {
			result.Failed++
			logger.Warn("Error sending push notification",
				slog.String("token", token),
				slog.Any("error", err),
			)

			continue
		}

		result.Receipts = append(result.Receipts, receipts...)
	}

	logger.Info("Alert relayed",
		slog.Int("tokens", result.Attempted),
		slog.Int("failed", result.Failed),
		slog.Int("receipts", len(result.Receipts)),
	)

	return result, nil
}
