package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/auth"
)

// fakeTokenStore is an in-memory TokenStore for service tests
type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
	nextID int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (f *fakeTokenStore) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	f.tokens[token] = &models.RefreshToken{
		ID:        f.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	f.nextID++
	return nil
}

func (f *fakeTokenStore) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	cp := *stored
	return &cp, nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.Revoked = true
	return nil
}

func newAuthService(users UserStore, tokens TokenStore) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "mentorhub-test",
	})
	return NewAuthService(users, tokens, jwtService, zerolog.Nop())
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     "jane@mentorhub.app",
		Password:  "correct-horse",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestAuthService_Register(t *testing.T) {
	users := newFakeUserStore()
	service := newAuthService(users, newFakeTokenStore())

	user, tokens, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, models.ProgressPaymentPending, user.ProgressStatus)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.Password, "password must be stored hashed")

	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeTokenStore())

	_, _, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, _, err = service.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	users := newFakeUserStore()
	service := newAuthService(users, newFakeTokenStore())

	_, _, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	user, tokens, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@mentorhub.app",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@mentorhub.app", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeTokenStore())

	_, _, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// wrong password and unknown email are indistinguishable to the caller
	_, _, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@mentorhub.app",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@mentorhub.app",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	users := newFakeUserStore()
	service := newAuthService(users, newFakeTokenStore())

	user, _, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	users.users[user.ID].IsActive = false

	_, _, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@mentorhub.app",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestAuthService_RefreshToken_Rotates(t *testing.T) {
	tokens := newFakeTokenStore()
	service := newAuthService(newFakeUserStore(), tokens)

	_, issued, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(context.Background(), issued.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, issued.RefreshToken, refreshed.RefreshToken)

	// the presented token is revoked and cannot be replayed
	_, err = service.RefreshToken(context.Background(), issued.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// the rotated token still works
	_, err = service.RefreshToken(context.Background(), refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_RefreshToken_UnknownAndExpired(t *testing.T) {
	tokens := newFakeTokenStore()
	service := newAuthService(newFakeUserStore(), tokens)

	_, issued, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = service.RefreshToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	tokens.tokens[issued.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)
	_, err = service.RefreshToken(context.Background(), issued.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
