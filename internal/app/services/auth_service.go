package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/auth"
)

// UserStore is the persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProgressStatus(ctx context.Context, id int64, status models.ProgressStatus) error
}

// TokenStore persists refresh tokens
type TokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

// AuthService handles registration, login and token refresh
type AuthService struct {
	users  UserStore
	tokens TokenStore
	jwt    *auth.JWTService
	logger zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(users UserStore, tokens TokenStore, jwt *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		logger: logger,
	}
}

// Register creates a new USER account at the start of the onboarding funnel
// and returns it with a token pair.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *dto.TokenResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:          req.Email,
		Password:       hashed,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           models.RoleUser,
		ProgressStatus: models.ProgressPaymentPending,
		IsActive:       true,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	user.ID = id

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")
	return user, tokens, nil
}

// Login verifies credentials and returns the user with a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The presented token is revoked so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	if stored.IsExpired(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, user.ID, refreshToken, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
