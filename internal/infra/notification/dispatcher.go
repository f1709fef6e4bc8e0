// Package notification routes push notifications to the provider that owns
// each token.
package notification

import (
	"context"

	"pushrelay/internal/domain/entity"
	"pushrelay/internal/domain/service"
	"pushrelay/internal/infra/metrics"
	"pushrelay/internal/infra/notification/expo"

	"go.uber.org/fx"
)

// DispatcherParams holds the providers a dispatcher routes between.
type DispatcherParams struct {
	fx.In

	Expo    service.PushService `name:"expo"`
	FCM     service.PushService `name:"fcm"`
	Metrics *metrics.Metrics
}

type dispatcher struct {
	expo    service.PushService
	fcm     service.PushService
	metrics *metrics.Metrics
}

// NewDispatcher returns a PushService that sends Expo-shaped tokens through
// Expo and everything else through FCM when it is configured.
func NewDispatcher(params DispatcherParams) service.PushService {
	return &dispatcher{
		expo:    params.Expo,
		fcm:     params.FCM,
		metrics: params.Metrics,
	}
}

func (d *dispatcher) Name() string {
	return "dispatcher"
}

func (d *dispatcher) Publish(ctx context.Context, token string, notification *entity.Notification) ([]entity.Receipt, error) {
	provider := d.route(token)

	receipts, err := provider.Publish(ctx, token, notification)
	if d.metrics != nil {
		d.metrics.ObserveDelivery(provider.Name(), receipts, err)
	}

	return receipts, err
}

func (d *dispatcher) route(token string) service.PushService {
	if d.fcm == nil || expo.IsPushToken(token) {
		return d.expo
	}

	return d.fcm
}
