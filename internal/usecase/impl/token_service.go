// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "pushrelay/internal/delivery/context"
	domainerrors "pushrelay/internal/domain/errors"
	"pushrelay/internal/domain/repository"
	"pushrelay/internal/usecase"
)

// tokenService implements the TokenUsecase interface.
type tokenService struct {
	tokenRepo repository.TokenRepository
	logger    *slog.Logger
}

// NewTokenService is the constructor for tokenService.
func NewTokenService(tokenRepo repository.TokenRepository, logger *slog.Logger) usecase.TokenUsecase {
	return &tokenService{
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *tokenService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterToken stores the token under the user after trimming both values.
func (srv *tokenService) RegisterToken(ctx context.Context, userID, token string) error {
	userID = strings.TrimSpace(userID)
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return domainerrors.ErrTokenFieldsRequired
	}

	added, err := srv.tokenRepo.SaveToken(ctx, userID, token)
	if err != nil {
		return domainerrors.NewRepositoryError(err, "failed to save push token")
	}

	srv.log(ctx).Info("Push token registered",
		slog.String("user_id", userID),
		slog.Bool("new", added),
	)

	return nil
}
