package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/middleware"
)

// sessionTokenHeader carries the guest identity for the career flow.
// Career users are a separate identity space from authenticated users.
const sessionTokenHeader = "X-Session-Token"

// CareerController handles the guest career assessment flow
type CareerController struct {
	careerService *services.CareerService
	logger        zerolog.Logger
}

// NewCareerController creates a new CareerController
func NewCareerController(careerService *services.CareerService, logger zerolog.Logger) *CareerController {
	return &CareerController{
		careerService: careerService,
		logger:        logger,
	}
}

// StartAssessment opens a guest assessment
// @Summary Start a career assessment
// @Description Opens an IN_PROGRESS assessment. Without a session token a new guest identity is created; with one the existing guest is resumed. No login is required.
// @Tags career
// @Accept json
// @Produce json
// @Param request body dto.StartAssessmentRequest true "Assessment start data"
// @Success 201 {object} dto.APIResponse{data=dto.StartAssessmentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Unknown session token"
// @Router /career/assessments [post]
func (c *CareerController) StartAssessment(ctx *gin.Context) {
	var req dto.StartAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if req.SessionToken == "" {
		req.SessionToken = ctx.GetHeader(sessionTokenHeader)
	}

	resp, err := c.careerService.StartAssessment(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// CompleteAssessment closes an assessment with its outcome
// @Summary Complete a career assessment
// @Description Transitions an IN_PROGRESS assessment to COMPLETED, stores the suggested path and atomically updates the per-path analytics aggregate.
// @Tags career
// @Accept json
// @Produce json
// @Param X-Session-Token header string true "Guest session token"
// @Param id path int true "Assessment ID"
// @Param request body dto.CompleteAssessmentRequest true "Assessment outcome"
// @Success 200 {object} dto.APIResponse{data=models.CareerAssessment}
// @Failure 401 {object} dto.ErrorResponse "Missing session token"
// @Failure 403 {object} dto.ErrorResponse "Assessment belongs to another guest"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Assessment is not in progress"
// @Router /career/assessments/{id}/complete [post]
func (c *CareerController) CompleteAssessment(ctx *gin.Context) {
	assessmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assessment ID")))
		return
	}

	var req dto.CompleteAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	assessment, err := c.careerService.CompleteAssessment(ctx.Request.Context(), ctx.GetHeader(sessionTokenHeader), assessmentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("assessmentID", assessmentID).
		Str("suggestedPath", req.SuggestedPath).
		Msg("Career assessment completed")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: assessment})
}

// AbandonAssessment marks an assessment abandoned
// @Summary Abandon a career assessment
// @Description Transitions an IN_PROGRESS assessment to ABANDONED. Abandoned runs never enter the analytics aggregate.
// @Tags career
// @Produce json
// @Param X-Session-Token header string true "Guest session token"
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Assessment belongs to another guest"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Assessment is not in progress"
// @Router /career/assessments/{id}/abandon [post]
func (c *CareerController) AbandonAssessment(ctx *gin.Context) {
	assessmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assessment ID")))
		return
	}

	if err := c.careerService.AbandonAssessment(ctx.Request.Context(), ctx.GetHeader(sessionTokenHeader), assessmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Assessment abandoned"}})
}

// ShareAssessment makes a completed assessment publicly readable
// @Summary Share a career assessment
// @Description Issues a short public share code for a COMPLETED assessment. Sharing an already shared assessment returns the existing code.
// @Tags career
// @Produce json
// @Param X-Session-Token header string true "Guest session token"
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.APIResponse{data=dto.ShareAssessmentResponse}
// @Failure 403 {object} dto.ErrorResponse "Assessment belongs to another guest"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Assessment is not completed"
// @Router /career/assessments/{id}/share [post]
func (c *CareerController) ShareAssessment(ctx *gin.Context) {
	assessmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assessment ID")))
		return
	}

	resp, err := c.careerService.ShareAssessment(ctx.Request.Context(), ctx.GetHeader(sessionTokenHeader), assessmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetSharedAssessment retrieves an assessment by share code
// @Summary Get a shared assessment
// @Description Public lookup of a shared assessment by its share code. No session token is required.
// @Tags career
// @Produce json
// @Param code path string true "Share code"
// @Success 200 {object} dto.APIResponse{data=models.CareerAssessment}
// @Failure 404 {object} dto.ErrorResponse "No shared assessment under this code"
// @Router /career/shared/{code} [get]
func (c *CareerController) GetSharedAssessment(ctx *gin.Context) {
	assessment, err := c.careerService.GetSharedAssessment(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: assessment})
}

// SubmitFeedback records feedback for a completed assessment
// @Summary Submit assessment feedback
// @Description Records the single feedback entry allowed per completed assessment. A second submission is rejected with a conflict.
// @Tags career
// @Accept json
// @Produce json
// @Param X-Session-Token header string true "Guest session token"
// @Param id path int true "Assessment ID"
// @Param request body dto.SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} dto.APIResponse{data=models.CareerFeedback}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Assessment belongs to another guest"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Feedback already submitted"
// @Router /career/assessments/{id}/feedback [post]
func (c *CareerController) SubmitFeedback(ctx *gin.Context) {
	assessmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assessment ID")))
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	feedback, err := c.careerService.SubmitFeedback(ctx.Request.Context(), ctx.GetHeader(sessionTokenHeader), assessmentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: feedback})
}

// GetAnalytics returns the aggregate for one career path
// @Summary Get career path analytics
// @Tags career
// @Produce json
// @Security BearerAuth
// @Param path query string true "Career path name"
// @Success 200 {object} dto.APIResponse{data=models.CareerAnalytics}
// @Failure 404 {object} dto.ErrorResponse "No aggregate for this path"
// @Router /career/analytics [get]
func (c *CareerController) GetAnalytics(ctx *gin.Context) {
	analytics, err := c.careerService.GetAnalytics(ctx.Request.Context(), ctx.Query("path"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: analytics})
}
