package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

const shareCodeAttempts = 3

// CareerStore is the persistence surface the career service needs
type CareerStore interface {
	CreateCareerUser(ctx context.Context, user *models.CareerUser) (int64, error)
	GetCareerUserByToken(ctx context.Context, token string) (*models.CareerUser, error)
	CreateAssessment(ctx context.Context, assessment *models.CareerAssessment) (int64, error)
	GetAssessment(ctx context.Context, id int64) (*models.CareerAssessment, error)
	GetAssessmentByShareCode(ctx context.Context, code string) (*models.CareerAssessment, error)
	CompleteAssessment(ctx context.Context, assessmentID int64, suggestedPath string, confidenceScore float64, matchingFactors []string) error
	AbandonAssessment(ctx context.Context, assessmentID int64) error
	SetShareCode(ctx context.Context, assessmentID int64, code string) error
	CreateFeedback(ctx context.Context, feedback *models.CareerFeedback) (int64, error)
	GetAnalytics(ctx context.Context, careerPath string) (*models.CareerAnalytics, error)
}

// CareerService handles the guest career assessment flow. Guests are
// identified by an opaque session token instead of a JWT, so every operation
// that touches an assessment verifies the token owns it.
type CareerService struct {
	careers CareerStore
}

// NewCareerService creates a new career service instance
func NewCareerService(careers CareerStore) *CareerService {
	return &CareerService{careers: careers}
}

// StartAssessment opens a new assessment. Without a session token a fresh
// career user is created; with one the existing career user is resumed.
func (s *CareerService) StartAssessment(ctx context.Context, req *dto.StartAssessmentRequest) (*dto.StartAssessmentResponse, error) {
	var careerUser *models.CareerUser

	if req.SessionToken != "" {
		existing, err := s.careers.GetCareerUserByToken(ctx, req.SessionToken)
		if err != nil {
			return nil, err
		}
		careerUser = existing
	} else {
		careerUser = &models.CareerUser{
			SessionToken: uuid.New().String(),
			AuthUserID:   req.AuthUserID,
		}
		if _, err := s.careers.CreateCareerUser(ctx, careerUser); err != nil {
			return nil, err
		}
	}

	assessment := &models.CareerAssessment{
		CareerUserID: careerUser.ID,
		Status:       models.AssessmentInProgress,
		Answers:      req.Answers,
	}
	if _, err := s.careers.CreateAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	logger.Info().Int64("careerUserID", careerUser.ID).Int64("assessmentID", assessment.ID).Msg("Career assessment started")

	return &dto.StartAssessmentResponse{
		AssessmentID: assessment.ID,
		SessionToken: careerUser.SessionToken,
	}, nil
}

// CompleteAssessment closes an in-progress assessment with its suggested
// path and updates the per-path analytics aggregate.
func (s *CareerService) CompleteAssessment(ctx context.Context, sessionToken string, assessmentID int64, req *dto.CompleteAssessmentRequest) (*models.CareerAssessment, error) {
	assessment, err := s.ownedAssessment(ctx, sessionToken, assessmentID)
	if err != nil {
		return nil, err
	}

	if !assessment.Status.CanTransitionTo(models.AssessmentCompleted) {
		return nil, apperrors.ErrInvalidTransition
	}

	err = s.careers.CompleteAssessment(ctx, assessmentID, req.SuggestedPath, req.ConfidenceScore, req.MatchingFactors)
	if err != nil {
		return nil, err
	}

	return s.careers.GetAssessment(ctx, assessmentID)
}

// AbandonAssessment marks an in-progress assessment as abandoned without
// touching analytics.
func (s *CareerService) AbandonAssessment(ctx context.Context, sessionToken string, assessmentID int64) error {
	assessment, err := s.ownedAssessment(ctx, sessionToken, assessmentID)
	if err != nil {
		return err
	}

	if !assessment.Status.CanTransitionTo(models.AssessmentAbandoned) {
		return apperrors.ErrInvalidTransition
	}

	return s.careers.AbandonAssessment(ctx, assessmentID)
}

// ShareAssessment makes a completed assessment publicly readable under a
// short code. Generation retries on the rare code collision.
func (s *CareerService) ShareAssessment(ctx context.Context, sessionToken string, assessmentID int64) (*dto.ShareAssessmentResponse, error) {
	assessment, err := s.ownedAssessment(ctx, sessionToken, assessmentID)
	if err != nil {
		return nil, err
	}

	if assessment.Status != models.AssessmentCompleted {
		return nil, apperrors.NewConflictError("only completed assessments can be shared")
	}

	if assessment.IsShared && assessment.ShareCode != nil {
		return &dto.ShareAssessmentResponse{ShareCode: *assessment.ShareCode}, nil
	}

	var lastErr error
	for attempt := 0; attempt < shareCodeAttempts; attempt++ {
		code := generateShareCode()
		if err := s.careers.SetShareCode(ctx, assessmentID, code); err != nil {
			if errors.Is(err, apperrors.ErrShareCodeCollision) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return &dto.ShareAssessmentResponse{ShareCode: code}, nil
	}

	return nil, fmt.Errorf("could not allocate a unique share code: %w", lastErr)
}

// GetSharedAssessment retrieves an assessment by its public share code.
// No session token is required.
func (s *CareerService) GetSharedAssessment(ctx context.Context, code string) (*models.CareerAssessment, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.NewBadRequestError("share code is required")
	}
	return s.careers.GetAssessmentByShareCode(ctx, code)
}

// SubmitFeedback records the single feedback entry allowed per completed
// assessment.
func (s *CareerService) SubmitFeedback(ctx context.Context, sessionToken string, assessmentID int64, req *dto.SubmitFeedbackRequest) (*models.CareerFeedback, error) {
	assessment, err := s.ownedAssessment(ctx, sessionToken, assessmentID)
	if err != nil {
		return nil, err
	}

	if assessment.Status != models.AssessmentCompleted {
		return nil, apperrors.NewConflictError("feedback is only accepted for completed assessments")
	}

	feedback := &models.CareerFeedback{
		AssessmentID:   assessmentID,
		Rating:         req.Rating,
		IsRelevant:     req.IsRelevant,
		WouldRecommend: req.WouldRecommend,
		Comments:       req.Comments,
	}
	if _, err := s.careers.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	return feedback, nil
}

// GetAnalytics returns the aggregate for one career path
func (s *CareerService) GetAnalytics(ctx context.Context, careerPath string) (*models.CareerAnalytics, error) {
	careerPath = strings.TrimSpace(careerPath)
	if careerPath == "" {
		return nil, apperrors.NewBadRequestError("career path is required")
	}
	return s.careers.GetAnalytics(ctx, careerPath)
}

// ownedAssessment resolves the session token to a career user and verifies
// the assessment belongs to it
func (s *CareerService) ownedAssessment(ctx context.Context, sessionToken string, assessmentID int64) (*models.CareerAssessment, error) {
	if sessionToken == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "session token is required")
	}

	careerUser, err := s.careers.GetCareerUserByToken(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	assessment, err := s.careers.GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	if assessment.CareerUserID != careerUser.ID {
		return nil, apperrors.ErrPermissionDenied
	}

	return assessment, nil
}

// generateShareCode derives an 8 character uppercase code from a fresh UUID
func generateShareCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}
