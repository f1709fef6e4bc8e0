package service

import (
	"context"

	"pushrelay/internal/domain/entity"
)

// PushService delivers a notification to a single push token
type PushService interface {
	// Publish sends the notification to token and returns the provider's
	// receipts for every message submitted on its behalf
	Publish(ctx context.Context, token string, notification *entity.Notification) ([]entity.Receipt, error)

	// Name identifies the provider in logs and metrics
	Name() string
}
