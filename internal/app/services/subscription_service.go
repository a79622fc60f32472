package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/filestorage"
)

// SubscriptionStore is the persistence surface the subscription service needs
type SubscriptionStore interface {
	CreateWithProof(ctx context.Context, sub *models.Subscription, proof *models.PaymentProof) error
	GetByID(ctx context.Context, id int64) (*models.Subscription, error)
	GetByUser(ctx context.Context, userID int64) ([]models.Subscription, error)
	GetProofByID(ctx context.Context, id int64) (*models.PaymentProof, error)
	ListProofs(ctx context.Context, status *models.PaymentProofStatus, page, pageSize int) ([]models.PaymentProof, int64, error)
	ReviewProof(ctx context.Context, proofID int64, decision models.PaymentProofStatus, reviewerID int64, subscriptionStatus models.SubscriptionStatus) error
}

// SubscriptionService handles the subscription request and payment approval
// workflow
type SubscriptionService struct {
	subs    SubscriptionStore
	plans   PlanStore
	storage filestorage.FileStorage
	logger  zerolog.Logger
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(subs SubscriptionStore, plans PlanStore, storage filestorage.FileStorage, logger zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{
		subs:    subs,
		plans:   plans,
		storage: storage,
		logger:  logger,
	}
}

// RequestSubscription creates a PENDING subscription for the plan together
// with a PENDING payment proof referencing the stored file.
func (s *SubscriptionService) RequestSubscription(ctx context.Context, userID, planID int64, proofFile *multipart.FileHeader) (*models.Subscription, *models.PaymentProof, error) {
	if proofFile == nil {
		return nil, nil, apperrors.NewBadRequestError("payment proof file is required")
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, nil, err
	}

	fileURL, err := s.storage.SaveFile(proofFile, "payment-proofs")
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	sub := &models.Subscription{
		UserID:    userID,
		PlanID:    planID,
		Status:    models.SubscriptionPending,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, plan.DurationDays),
	}
	proof := &models.PaymentProof{
		FileURL: fileURL,
		Status:  models.PaymentProofPending,
	}

	if err := s.subs.CreateWithProof(ctx, sub, proof); err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userID", userID).Int64("planID", planID).Int64("subscriptionID", sub.ID).Msg("Subscription requested")
	return sub, proof, nil
}

// ReviewPayment applies an admin decision to a pending payment proof.
// APPROVED activates the owning subscription, REJECTED cancels it. No other
// transitions out of PENDING exist, and a proof already reviewed is rejected
// with an illegal-transition error.
func (s *SubscriptionService) ReviewPayment(ctx context.Context, reviewer *models.User, proofID int64, decision models.PaymentProofStatus) (*models.PaymentProof, error) {
	if reviewer == nil || reviewer.Role != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	proof, err := s.subs.GetProofByID(ctx, proofID)
	if err != nil {
		return nil, err
	}

	if !proof.Status.CanTransitionTo(decision) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition, "payment proof is not pending review")
	}

	var subStatus models.SubscriptionStatus
	switch decision {
	case models.PaymentProofApproved:
		subStatus = models.SubscriptionActive
	case models.PaymentProofRejected:
		subStatus = models.SubscriptionCancelled
	default:
		return nil, apperrors.NewBadRequestError("decision must be APPROVED or REJECTED")
	}

	if err := s.subs.ReviewProof(ctx, proofID, decision, reviewer.ID, subStatus); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("proofID", proofID).Str("decision", string(decision)).Int64("reviewerID", reviewer.ID).Msg("Payment proof reviewed")
	return s.subs.GetProofByID(ctx, proofID)
}

// GetUserSubscriptions returns the user's subscriptions, newest first
func (s *SubscriptionService) GetUserSubscriptions(ctx context.Context, userID int64) ([]models.Subscription, error) {
	return s.subs.GetByUser(ctx, userID)
}

// ListPaymentProofs returns a page of proofs, optionally filtered by status
func (s *SubscriptionService) ListPaymentProofs(ctx context.Context, status *models.PaymentProofStatus, page, pageSize int) ([]models.PaymentProof, int64, error) {
	return s.subs.ListProofs(ctx, status, page, pageSize)
}
