package dto

import "github.com/mentorhub/mentorhub/internal/app/models"

// CreatePlanRequest represents plan creation data.
// Field-level rules are re-checked in the service so every violation is
// reported at once.
type CreatePlanRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	DurationDays int      `json:"durationDays"`
	Services     []string `json:"services"`
	Features     []string `json:"features"`
}

// UpdatePlanRequest represents plan update data
type UpdatePlanRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	DurationDays int      `json:"durationDays"`
	Services     []string `json:"services"`
	Features     []string `json:"features"`
}

// PlanListResponse represents a page of plans
type PlanListResponse struct {
	Plans      []models.Plan  `json:"plans"`
	Pagination PaginationInfo `json:"pagination"`
}
