// Package memory implements the repositories on process memory. Nothing
// survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"pushrelay/internal/domain/repository"
)

type tokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]map[string]struct{}
}

// NewTokenRepository creates an empty in-memory token registry
func NewTokenRepository() repository.TokenRepository {
	return &tokenRepository{
		tokens: make(map[string]map[string]struct{}),
	}
}

// SaveToken adds token to the user's set, creating the set on first use
func (r *tokenRepository) SaveToken(ctx context.Context, userID, token string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.tokens[userID]
	if !ok {
		set = make(map[string]struct{})
		r.tokens[userID] = set
	}

	if _, exists := set[token]; exists {
		return false, nil
	}
	set[token] = struct{}{}

	return true, nil
}

// FindTokensByUser returns a sorted copy of the user's tokens
func (r *tokenRepository) FindTokensByUser(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.tokens[userID]
	tokens := make([]string, 0, len(set))
	for token := range set {
		tokens = append(tokens, token)
	}
	slices.Sort(tokens)

	return tokens, nil
}

// CountTokens returns the number of tokens across all users
func (r *tokenRepository) CountTokens(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, set := range r.tokens {
		total += len(set)
	}

	return total, nil
}
