package services

import (
	"context"
	"strings"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// PlanStore is the persistence surface the plan service needs
type PlanStore interface {
	Create(ctx context.Context, plan *models.Plan) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Plan, error)
	List(ctx context.Context, page, pageSize int) ([]models.Plan, int64, error)
	Update(ctx context.Context, plan *models.Plan) error
	Delete(ctx context.Context, id int64) error
}

// PlanService handles subscription plan management
type PlanService struct {
	plans PlanStore
}

// NewPlanService creates a new plan service instance
func NewPlanService(plans PlanStore) *PlanService {
	return &PlanService{plans: plans}
}

// validatePlanPayload checks every field and collects all violations so the
// caller sees the full list, not just the first.
func validatePlanPayload(name, description string, price float64, durationDays int, services []string) *dto.ValidationErrors {
	ve := dto.NewValidationErrors()

	if strings.TrimSpace(name) == "" {
		ve.AddError("name", "name cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		ve.AddError("description", "description cannot be empty")
	}
	if price < 0 {
		ve.AddError("price", "price must be greater than or equal to 0")
	}
	if durationDays < 1 {
		ve.AddError("durationDays", "duration must be at least 1 day")
	}
	if len(services) == 0 {
		ve.AddError("services", "services cannot be empty")
	}
	for _, svc := range services {
		if strings.TrimSpace(svc) == "" {
			ve.AddError("services", "services entries cannot be blank")
			break
		}
	}

	return ve
}

// planValidationError wraps the collected violations into the error channel
func planValidationError(ve *dto.ValidationErrors) error {
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, "plan validation failed").
		WithDetails(map[string]interface{}{"violations": ve.Errors})
}

// CreatePlan validates and persists a new plan
func (s *PlanService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*models.Plan, error) {
	if ve := validatePlanPayload(req.Name, req.Description, req.Price, req.DurationDays, req.Services); ve.HasErrors() {
		return nil, planValidationError(ve)
	}

	features := req.Features
	if features == nil {
		features = []string{}
	}

	plan := &models.Plan{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Services:     req.Services,
		Features:     features,
	}

	if _, err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// GetPlanByID retrieves a plan by ID
func (s *PlanService) GetPlanByID(ctx context.Context, id int64) (*models.Plan, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid plan ID")
	}
	return s.plans.GetByID(ctx, id)
}

// ListPlans returns a page of plans ordered by creation time descending
func (s *PlanService) ListPlans(ctx context.Context, page, pageSize int) ([]models.Plan, int64, error) {
	if page < 1 || pageSize < 1 {
		ve := dto.NewValidationErrors()
		if page < 1 {
			ve.AddError("page", "page must be positive")
		}
		if pageSize < 1 {
			ve.AddError("pageSize", "page size must be positive")
		}
		return nil, 0, planValidationError(ve)
	}

	return s.plans.List(ctx, page, pageSize)
}

// UpdatePlan validates and replaces an existing plan
func (s *PlanService) UpdatePlan(ctx context.Context, id int64, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid plan ID")
	}

	if ve := validatePlanPayload(req.Name, req.Description, req.Price, req.DurationDays, req.Services); ve.HasErrors() {
		return nil, planValidationError(ve)
	}

	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.Price = req.Price
	plan.DurationDays = req.DurationDays
	plan.Services = req.Services
	plan.Features = req.Features
	if plan.Features == nil {
		plan.Features = []string{}
	}

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// DeletePlan removes a plan that no subscription references
func (s *PlanService) DeletePlan(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid plan ID")
	}
	return s.plans.Delete(ctx, id)
}
