package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/mentorhub/mentorhub/internal/pkg/helpers"
)

// PlanController handles mentorship plan management
type PlanController struct {
	planService *services.PlanService
}

// NewPlanController creates a new PlanController
func NewPlanController(planService *services.PlanService) *PlanController {
	return &PlanController{planService: planService}
}

// CreatePlan handles plan creation
// @Summary Create a mentorship plan
// @Description Creates a new plan. All field violations are reported together.
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePlanRequest true "Plan information"
// @Success 201 {object} dto.APIResponse{data=models.Plan} "Plan created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans [post]
func (c *PlanController) CreatePlan(ctx *gin.Context) {
	var req dto.CreatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	plan, err := c.planService.CreatePlan(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: plan})
}

// GetPlanByID retrieves a single plan
// @Summary Get plan by ID
// @Tags plans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} dto.APIResponse{data=models.Plan}
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /plans/{id} [get]
func (c *PlanController) GetPlanByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan ID")))
		return
	}

	plan, err := c.planService.GetPlanByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: plan})
}

// ListPlans retrieves a page of plans
// @Summary List plans
// @Tags plans
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PlanListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Router /plans [get]
func (c *PlanController) ListPlans(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	plans, total, err := c.planService.ListPlans(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PlanListResponse{
			Plans:      plans,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
	})
}

// UpdatePlan handles plan updates
// @Summary Update a plan
// @Description Replaces a plan's fields. Existing subscriptions keep the end dates computed at purchase time.
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Param request body dto.UpdatePlanRequest true "Plan information"
// @Success 200 {object} dto.APIResponse{data=models.Plan}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /plans/{id} [put]
func (c *PlanController) UpdatePlan(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan ID")))
		return
	}

	var req dto.UpdatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	plan, err := c.planService.UpdatePlan(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: plan})
}

// DeletePlan handles plan deletion
// @Summary Delete a plan
// @Description Deletes a plan. Fails with a conflict if any subscription references it.
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 409 {object} dto.ErrorResponse "Plan has subscriptions"
// @Router /plans/{id} [delete]
func (c *PlanController) DeletePlan(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan ID")))
		return
	}

	if err := c.planService.DeletePlan(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Plan deleted"}})
}

// parseIDParam parses a positive int64 path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
