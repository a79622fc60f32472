package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/middleware"
)

// UserController handles user profile and onboarding funnel operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile returns the authenticated user
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// AdvanceProgress moves a user forward in the onboarding funnel
// @Summary Advance a user's onboarding progress
// @Description Moves a user to a later funnel stage. The funnel never moves backward; backward or same-stage targets are rejected with a conflict.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.AdvanceProgressRequest true "Target stage"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Unknown progress status"
// @Failure 403 {object} dto.ErrorResponse "Admin or mentor role required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Backward progress move"
// @Router /users/{id}/progress [put]
func (c *UserController) AdvanceProgress(ctx *gin.Context) {
	actorID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")))
		return
	}

	var req dto.AdvanceProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	actor, err := c.userService.GetUserByID(ctx.Request.Context(), actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.AdvanceProgress(ctx.Request.Context(), actor, userID, req.Target)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Str("target", string(req.Target)).Msg("Progress advance rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// SaveScholarshipAssessment upserts the caller's scholarship matrix
// @Summary Save scholarship assessment
// @Description Creates or replaces the caller's scholarship matrix. One record per user.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertScholarshipAssessmentRequest true "Scholarship matrix"
// @Success 200 {object} dto.APIResponse{data=models.ScholarshipAssessment}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /profile/scholarship-assessment [put]
func (c *UserController) SaveScholarshipAssessment(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpsertScholarshipAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	rec, err := c.userService.SaveScholarshipAssessment(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rec})
}

// GetScholarshipAssessment retrieves the caller's scholarship matrix
// @Summary Get scholarship assessment
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.ScholarshipAssessment}
// @Failure 404 {object} dto.ErrorResponse "No record yet"
// @Router /profile/scholarship-assessment [get]
func (c *UserController) GetScholarshipAssessment(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	rec, err := c.userService.GetScholarshipAssessment(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rec})
}

// SavePersonalDiscovery upserts the caller's discovery record
// @Summary Save personal discovery
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertPersonalDiscoveryRequest true "Personal discovery data"
// @Success 200 {object} dto.APIResponse{data=models.PersonalDiscovery}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /profile/personal-discovery [put]
func (c *UserController) SavePersonalDiscovery(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpsertPersonalDiscoveryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	rec, err := c.userService.SavePersonalDiscovery(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rec})
}

// GetPersonalDiscovery retrieves the caller's discovery record
// @Summary Get personal discovery
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.PersonalDiscovery}
// @Failure 404 {object} dto.ErrorResponse "No record yet"
// @Router /profile/personal-discovery [get]
func (c *UserController) GetPersonalDiscovery(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	rec, err := c.userService.GetPersonalDiscovery(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rec})
}

// SaveCV upserts the caller's CV record
// @Summary Save CV
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertCVRequest true "CV data"
// @Success 200 {object} dto.APIResponse{data=models.CV}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /profile/cv [put]
func (c *UserController) SaveCV(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpsertCVRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	rec, err := c.userService.SaveCV(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rec})
}

// GetCV retrieves the caller's CV record
// @Summary Get CV
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.CV}
// @Failure 404 {object} dto.ErrorResponse "No record yet"
// @Router /profile/cv [get]
func (c *UserController) GetCV(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	rec, err := c.userService.GetCV(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rec})
}
