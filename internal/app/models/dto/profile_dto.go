package dto

import "github.com/mentorhub/mentorhub/internal/app/models"

// UpsertScholarshipAssessmentRequest creates or replaces the caller's record
type UpsertScholarshipAssessmentRequest struct {
	Matrix string `json:"matrix" binding:"required"`
	Notes  string `json:"notes"`
}

// UpsertPersonalDiscoveryRequest creates or replaces the caller's record
type UpsertPersonalDiscoveryRequest struct {
	Strengths string `json:"strengths" binding:"required"`
	Interests string `json:"interests"`
	Values    string `json:"values"`
}

// UpsertCVRequest creates or replaces the caller's CV record
type UpsertCVRequest struct {
	FileURL string `json:"fileUrl" binding:"required"`
	Summary string `json:"summary"`
}

// AdvanceProgressRequest moves a user forward in the onboarding funnel
type AdvanceProgressRequest struct {
	Target models.ProgressStatus `json:"target" binding:"required"`
}
