package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/mentorhub/mentorhub/internal/pkg/helpers"
)

// SubscriptionController handles subscription requests and payment review
type SubscriptionController struct {
	subscriptionService *services.SubscriptionService
	userService         *services.UserService
	logger              zerolog.Logger
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(subscriptionService *services.SubscriptionService, userService *services.UserService, logger zerolog.Logger) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
		userService:         userService,
		logger:              logger,
	}
}

// RequestSubscription handles a subscription purchase request
// @Summary Request a subscription
// @Description Creates a PENDING subscription for the caller together with its payment proof upload. The subscription activates once an admin approves the proof.
// @Tags subscriptions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param planId formData int true "Plan ID"
// @Param proof formData file true "Payment proof document"
// @Success 201 {object} dto.APIResponse{data=dto.SubscriptionResponse} "Subscription requested"
// @Failure 400 {object} dto.ErrorResponse "Missing plan or proof file"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions [post]
func (c *SubscriptionController) RequestSubscription(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	planID, err := strconv.ParseInt(ctx.PostForm("planId"), 10, 64)
	if err != nil || planID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan ID").WithField("planId")))
		return
	}

	proofFile, err := ctx.FormFile("proof")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Payment proof file is required").WithField("proof")))
		return
	}

	subscription, proof, err := c.subscriptionService.RequestSubscription(ctx.Request.Context(), userID, planID, proofFile)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Int64("planID", planID).Msg("Subscription request failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", userID).
		Int64("subscriptionID", subscription.ID).
		Int64("proofID", proof.ID).
		Msg("Subscription requested")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.NewSubscriptionResponse(subscription, time.Now()),
	})
}

// GetMySubscriptions lists the caller's subscriptions
// @Summary List own subscriptions
// @Description Lists the caller's subscriptions. An ACTIVE subscription past its end date is reported with effectiveStatus EXPIRED.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SubscriptionResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /subscriptions/me [get]
func (c *SubscriptionController) GetMySubscriptions(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	subscriptions, err := c.subscriptionService.GetUserSubscriptions(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	now := time.Now()
	responses := make([]dto.SubscriptionResponse, 0, len(subscriptions))
	for i := range subscriptions {
		responses = append(responses, dto.NewSubscriptionResponse(&subscriptions[i], now))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// ListPaymentProofs lists payment proofs for review
// @Summary List payment proofs
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by proof status" Enums(PENDING, APPROVED, REJECTED)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.PaymentProof}
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /payment-proofs [get]
func (c *SubscriptionController) ListPaymentProofs(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var status *models.PaymentProofStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.PaymentProofStatus(raw)
		status = &s
	}

	proofs, total, err := c.subscriptionService.ListPaymentProofs(ctx.Request.Context(), status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"proofs":     proofs,
			"pagination": helpers.NewPaginationInfo(total, page, size),
		},
	})
}

// ReviewPayment handles an admin decision on a payment proof
// @Summary Review a payment proof
// @Description Approves or rejects a PENDING proof. Approval activates the subscription, rejection cancels it. A proof that already left PENDING is rejected with a conflict.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment proof ID"
// @Param request body dto.ReviewPaymentRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=models.PaymentProof}
// @Failure 400 {object} dto.ErrorResponse "Invalid decision"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Proof not found"
// @Failure 409 {object} dto.ErrorResponse "Proof already reviewed"
// @Router /payment-proofs/{id}/review [post]
func (c *SubscriptionController) ReviewPayment(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	proofID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payment proof ID")))
		return
	}

	var req dto.ReviewPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	reviewer, err := c.userService.GetUserByID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	proof, err := c.subscriptionService.ReviewPayment(ctx.Request.Context(), reviewer, proofID, req.Decision)
	if err != nil {
		c.logger.Warn().Err(err).Int64("proofID", proofID).Str("decision", string(req.Decision)).Msg("Payment review failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("proofID", proofID).
		Int64("reviewerID", reviewer.ID).
		Str("decision", string(req.Decision)).
		Msg("Payment proof reviewed")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: proof})
}
