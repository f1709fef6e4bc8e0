package impl

import (
	"context"
	"log/slog"
	"testing"

	domainerrors "pushrelay/internal/domain/errors"
	mockRepo "pushrelay/internal/mocks/repository"
	"pushrelay/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServiceFixtures holds all test dependencies for token service tests.
type tokenServiceFixtures struct {
	service   usecase.TokenUsecase
	tokenRepo *mockRepo.MockTokenRepository
}

func createTestTokenService(t *testing.T) tokenServiceFixtures {
	tokenRepo := mockRepo.NewMockTokenRepository(t)
	service := NewTokenService(tokenRepo, slog.New(slog.DiscardHandler))

	return tokenServiceFixtures{
		service:   service,
		tokenRepo: tokenRepo,
	}
}

func TestTokenService_RegisterToken_Success(t *testing.T) {
	fx := createTestTokenService(t)
	ctx := context.Background()

	fx.tokenRepo.EXPECT().
		SaveToken(ctx, "user-1", "ExponentPushToken[abc]").
		Return(true, nil)

	err := fx.service.RegisterToken(ctx, "user-1", "ExponentPushToken[abc]")
	require.NoError(t, err)
}

func TestTokenService_RegisterToken_Duplicate(t *testing.T) {
	fx := createTestTokenService(t)
	ctx := context.Background()

	fx.tokenRepo.EXPECT().
		SaveToken(ctx, "user-1", "ExponentPushToken[abc]").
		Return(false, nil)

	err := fx.service.RegisterToken(ctx, "user-1", "ExponentPushToken[abc]")
	require.NoError(t, err)
}

func TestTokenService_RegisterToken_TrimsValues(t *testing.T) {
	fx := createTestTokenService(t)
	ctx := context.Background()

	fx.tokenRepo.EXPECT().
		SaveToken(ctx, "user-1", "ExponentPushToken[abc]").
		Return(true, nil)

	err := fx.service.RegisterToken(ctx, "  user-1 ", "\tExponentPushToken[abc]\n")
	require.NoError(t, err)
}

func TestTokenService_RegisterToken_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		token  string
	}{
		{name: "missing user", userID: "", token: "ExponentPushToken[abc]"},
		{name: "missing token", userID: "user-1", token: ""},
		{name: "whitespace user", userID: "   ", token: "ExponentPushToken[abc]"},
		{name: "both missing", userID: "", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestTokenService(t)

			err := fx.service.RegisterToken(context.Background(), tt.userID, tt.token)
			require.ErrorIs(t, err, domainerrors.ErrTokenFieldsRequired)
		})
	}
}

func TestTokenService_RegisterToken_RepositoryError(t *testing.T) {
	fx := createTestTokenService(t)
	ctx := context.Background()
	storeErr := errors.New("store unavailable")

	fx.tokenRepo.EXPECT().
		SaveToken(ctx, "user-1", "ExponentPushToken[abc]").
		Return(false, storeErr)

	err := fx.service.RegisterToken(ctx, "user-1", "ExponentPushToken[abc]")
	require.ErrorIs(t, err, storeErr)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REPOSITORY_FAILED", appErr.ErrorCode())
}
