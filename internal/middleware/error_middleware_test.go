package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

func respondWith(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, &body
}

func TestHandleAPIError_Classification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantApp  dto.ErrorCode
	}{
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"plan not found", apperrors.ErrPlanNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"not registered reads as not found", apperrors.ErrNotRegistered, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"already enrolled", apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"illegal transition", apperrors.ErrInvalidTransition, http.StatusConflict, dto.ErrorCodeIllegalTransition},
		{"plan in use", apperrors.ErrPlanInUse, http.StatusConflict, dto.ErrorCodeResourceConflict},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"revoked token", apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := respondWith(t, tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantApp, body.Error.Code)
		})
	}
}

func TestHandleAPIError_CustomErrorMessageAndDetails(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrValidationFailed, "plan validation failed").
		WithDetails(map[string]interface{}{"violations": []string{"price"}})

	code, body := respondWith(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "plan validation failed", body.Error.Message)
	assert.NotNil(t, body.Error.Details)
}

func TestHandleAPIError_WrappedSentinel(t *testing.T) {
	// errors wrapped deeper in the chain still classify by sentinel
	err := apperrors.NewBadRequestError("lesson does not belong to the enrolled course")

	code, body := respondWith(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "lesson does not belong to the enrolled course", body.Error.Message)
}

func TestHandleAPIError_InternalHidesDetails(t *testing.T) {
	_, body := respondWith(t, errors.New("pq: connection refused"))
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.NotContains(t, body.Error.Message, "connection refused")
}
