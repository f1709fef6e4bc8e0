// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
)

// TokenRepository stores the push tokens registered for each user.
type TokenRepository interface {
	// SaveToken adds token to the user's set. Saving a token twice is a no-op;
	// added reports whether the set changed.
	SaveToken(ctx context.Context, userID, token string) (added bool, err error)

	// FindTokensByUser returns the user's tokens in a stable order, or an empty
	// slice when the user registered none.
	FindTokensByUser(ctx context.Context, userID string) ([]string, error)

	// CountTokens returns the number of registered tokens across all users.
	CountTokens(ctx context.Context) (int, error)
}
