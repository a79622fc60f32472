package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "mentorhub-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := testJWTService(time.Hour)
	user := &models.User{ID: 7, Email: "jane@mentorhub.app", Role: models.RoleMentor}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 720*3600, refreshExpiresIn)

	claims, err := service.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jane@mentorhub.app", claims.Email)
	assert.Equal(t, string(models.RoleMentor), claims.Role)
	assert.Equal(t, "mentorhub-test", claims.Issuer)
}

func TestJWTService_ValidateAndExtractClaims_Rejections(t *testing.T) {
	service := testJWTService(time.Hour)

	_, err := service.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ValidateAndExtractClaims("not-a-jwt")
	assert.Error(t, err)

	// tokens signed with a different secret are rejected
	other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour, RefreshTokenExp: time.Hour})
	foreign, _, _, _, err := other.GenerateTokenPair(&models.User{ID: 7, Email: "jane@mentorhub.app", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = service.ValidateAndExtractClaims(foreign)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := testJWTService(-time.Minute)

	token, _, _, _, err := service.GenerateTokenPair(&models.User{ID: 7, Email: "jane@mentorhub.app", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = service.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// a raw token without the scheme is accepted as-is
	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, CheckPassword(hash, "correct-horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
