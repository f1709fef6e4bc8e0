package main

import (
	"context"
	"log/slog"
	"os"

	"pushrelay/config"
	"pushrelay/internal/delivery"
	"pushrelay/internal/delivery/api"
	"pushrelay/internal/delivery/api/router/handler"
	"pushrelay/internal/domain/repository"
	"pushrelay/internal/domain/service"
	logs "pushrelay/internal/infra/log"
	"pushrelay/internal/infra/metrics"
	"pushrelay/internal/infra/notification"
	"pushrelay/internal/infra/notification/expo"
	"pushrelay/internal/infra/persistence/memory"
	"pushrelay/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			registerTokenGauge,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memory.NewTokenRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				newExpoService,
				fx.ResultTags(`name:"expo"`),
			),
			fx.Annotate(
				newFirebaseService,
				fx.ResultTags(`name:"fcm"`),
			),
			notification.NewDispatcher,
		),
	)
}

func newExpoService(cfg *config.Config) service.PushService {
	return expo.NewFromConfig(cfg)
}

// newFirebaseService returns a nil service when Firebase is not configured
func newFirebaseService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PushService, error) {
	if cfg.Firebase == nil {
		return nil, nil
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firebase service")
	}
	logger.Info("Firebase delivery enabled for non-Expo tokens")

	return svc, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewTokenService,
			impl.NewAlertService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewTokenHandler,
			handler.NewAlertHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func registerTokenGauge(ctx context.Context, m *metrics.Metrics, tokenRepo repository.TokenRepository) {
	m.RegisterTokenCount(func() float64 {
		count, err := tokenRepo.CountTokens(ctx)
		if err != nil {
			return 0
		}

		return float64(count)
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
