package usecase

import (
	"context"

	"pushrelay/internal/domain/entity"
)

// NoTokensMessage is reported when an alert targets a user without tokens.
const NoTokensMessage = "No push tokens for this user"

// RelayResult is the outcome of relaying one alert
type RelayResult struct {
	// Receipts from every token whose delivery call succeeded, in token order
	Receipts []entity.Receipt
	// NoTokens is set when the user had nothing registered and no delivery was attempted
	NoTokens bool
	// Attempted and Failed count per-token delivery calls
	Attempted int
	Failed    int
}

// AlertUsecase defines the interface for relaying monitoring alerts
type AlertUsecase interface {
	// RelayAlert pushes the alert to every token registered for its user.
	// Per-token failures are logged and do not fail the call.
	RelayAlert(ctx context.Context, alert *entity.Alert) (*RelayResult, error)
}
