package models

import "time"

// SubscriptionStatus is the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "PENDING"
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// subscriptionTransitions lists the legal moves between stored states.
// EXPIRED is never stored; it is derived at read time from endDate.
var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionPending: {SubscriptionActive, SubscriptionCancelled},
	SubscriptionActive:  {SubscriptionCancelled},
}

// CanTransitionTo reports whether the subscription may move from s to target
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Subscription links a user to a plan for a time interval
type Subscription struct {
	ID        int64              `json:"id" db:"id"`
	UserID    int64              `json:"userId" db:"user_id"`
	PlanID    int64              `json:"planId" db:"plan_id"`
	Status    SubscriptionStatus `json:"status" db:"status"`
	StartDate time.Time          `json:"startDate" db:"start_date"`
	EndDate   time.Time          `json:"endDate" db:"end_date"`
	CreatedAt time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" db:"updated_at"`

	Plan *Plan `json:"plan,omitempty"`
}

// EffectiveStatus returns the status as observed at the given instant.
// An ACTIVE subscription whose end date has passed reads as EXPIRED;
// the stored column is never flipped by a background job.
func (s *Subscription) EffectiveStatus(now time.Time) SubscriptionStatus {
	if s.Status == SubscriptionActive && now.After(s.EndDate) {
		return SubscriptionExpired
	}
	return s.Status
}

// PaymentProofStatus is the review state of an uploaded payment proof
type PaymentProofStatus string

const (
	PaymentProofPending  PaymentProofStatus = "PENDING"
	PaymentProofApproved PaymentProofStatus = "APPROVED"
	PaymentProofRejected PaymentProofStatus = "REJECTED"
)

// CanTransitionTo reports whether a proof may move from s to target.
// APPROVED and REJECTED are terminal.
func (s PaymentProofStatus) CanTransitionTo(target PaymentProofStatus) bool {
	if s != PaymentProofPending {
		return false
	}
	return target == PaymentProofApproved || target == PaymentProofRejected
}

// PaymentProof is uploaded evidence of payment awaiting admin review
type PaymentProof struct {
	ID             int64              `json:"id" db:"id"`
	SubscriptionID int64              `json:"subscriptionId" db:"subscription_id"`
	FileURL        string             `json:"fileUrl" db:"file_url"`
	Status         PaymentProofStatus `json:"status" db:"status"`
	ReviewedBy     *int64             `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt     *time.Time         `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt      time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" db:"updated_at"`
}
