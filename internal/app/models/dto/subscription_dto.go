package dto

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
)

// ReviewPaymentRequest carries an admin's decision on a payment proof
type ReviewPaymentRequest struct {
	Decision models.PaymentProofStatus `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
}

// SubscriptionResponse is a subscription with its read-time effective status
type SubscriptionResponse struct {
	ID              int64                     `json:"id"`
	UserID          int64                     `json:"userId"`
	PlanID          int64                     `json:"planId"`
	Status          models.SubscriptionStatus `json:"status"`
	EffectiveStatus models.SubscriptionStatus `json:"effectiveStatus"`
	StartDate       time.Time                 `json:"startDate"`
	EndDate         time.Time                 `json:"endDate"`
	Plan            *models.Plan              `json:"plan,omitempty"`
}

// NewSubscriptionResponse builds a response computing the effective status
// against the supplied instant.
func NewSubscriptionResponse(sub *models.Subscription, now time.Time) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              sub.ID,
		UserID:          sub.UserID,
		PlanID:          sub.PlanID,
		Status:          sub.Status,
		EffectiveStatus: sub.EffectiveStatus(now),
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		Plan:            sub.Plan,
	}
}
