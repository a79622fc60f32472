package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/pkg/auth"
)

func protectedRouter(t *testing.T, jwtService *auth.JWTService, roles ...models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("/", m.JWTAuth())
	if len(roles) > 0 {
		group.Use(m.RoleRequired(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func testTokenFor(t *testing.T, jwtService *auth.JWTService, role models.Role) string {
	t.Helper()

	user := &models.User{ID: 7, Email: "jane@mentorhub.app", Role: role}
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)
	return accessToken
}

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "mentorhub-test",
	})
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := protectedRouter(t, jwtService)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testTokenFor(t, jwtService, models.RoleUser))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":7`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := protectedRouter(t, newTestJWTService(time.Hour))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_005")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	router := protectedRouter(t, jwtService)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testTokenFor(t, jwtService, models.RoleUser))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_003")
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	router := protectedRouter(t, newTestJWTService(time.Hour))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_002")
}

func TestRoleRequired(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := protectedRouter(t, jwtService, models.RoleAdmin, models.RoleMentor)

	send := func(role models.Role) int {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+testTokenFor(t, jwtService, role))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(models.RoleAdmin))
	assert.Equal(t, http.StatusOK, send(models.RoleMentor))
	assert.Equal(t, http.StatusForbidden, send(models.RoleUser))
	assert.Equal(t, http.StatusForbidden, send(models.RoleTeamMember))
}
