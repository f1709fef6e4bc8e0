package usecase

import (
	"context"
)

// TokenUsecase defines the interface for push token registration use cases
type TokenUsecase interface {
	// RegisterToken associates a push token with a user. Registering the same
	// pair again is a no-op.
	RegisterToken(ctx context.Context, userID, token string) error
}
