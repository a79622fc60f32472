package services

import (
	"context"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// ProfileStore is the persistence surface for the one-to-one profile records
type ProfileStore interface {
	UpsertScholarshipAssessment(ctx context.Context, rec *models.ScholarshipAssessment) error
	GetScholarshipAssessment(ctx context.Context, userID int64) (*models.ScholarshipAssessment, error)
	UpsertPersonalDiscovery(ctx context.Context, rec *models.PersonalDiscovery) error
	GetPersonalDiscovery(ctx context.Context, userID int64) (*models.PersonalDiscovery, error)
	UpsertCV(ctx context.Context, rec *models.CV) error
	GetCV(ctx context.Context, userID int64) (*models.CV, error)
}

// UserService handles user profile reads and the onboarding funnel
type UserService struct {
	users    UserStore
	profiles ProfileStore
}

// NewUserService creates a new user service instance
func NewUserService(users UserStore, profiles ProfileStore) *UserService {
	return &UserService{users: users, profiles: profiles}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// AdvanceProgress moves a user forward in the onboarding funnel. Only admins
// and mentors may advance someone, and the funnel never moves backward.
func (s *UserService) AdvanceProgress(ctx context.Context, actor *models.User, userID int64, target models.ProgressStatus) (*models.User, error) {
	if actor == nil || (actor.Role != models.RoleAdmin && actor.Role != models.RoleMentor) {
		return nil, apperrors.ErrPermissionDenied
	}

	if !target.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown progress status")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.ProgressStatus.CanAdvanceTo(target) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.users.UpdateProgressStatus(ctx, userID, target); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("userID", userID).
		Str("from", string(user.ProgressStatus)).
		Str("to", string(target)).
		Msg("User progress advanced")

	user.ProgressStatus = target
	return user, nil
}

// SaveScholarshipAssessment creates or replaces the caller's scholarship matrix
func (s *UserService) SaveScholarshipAssessment(ctx context.Context, userID int64, req *dto.UpsertScholarshipAssessmentRequest) (*models.ScholarshipAssessment, error) {
	rec := &models.ScholarshipAssessment{
		UserID: userID,
		Matrix: req.Matrix,
		Notes:  req.Notes,
	}
	if err := s.profiles.UpsertScholarshipAssessment(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetScholarshipAssessment retrieves the caller's scholarship matrix
func (s *UserService) GetScholarshipAssessment(ctx context.Context, userID int64) (*models.ScholarshipAssessment, error) {
	return s.profiles.GetScholarshipAssessment(ctx, userID)
}

// SavePersonalDiscovery creates or replaces the caller's discovery record
func (s *UserService) SavePersonalDiscovery(ctx context.Context, userID int64, req *dto.UpsertPersonalDiscoveryRequest) (*models.PersonalDiscovery, error) {
	rec := &models.PersonalDiscovery{
		UserID:    userID,
		Strengths: req.Strengths,
		Interests: req.Interests,
		Values:    req.Values,
	}
	if err := s.profiles.UpsertPersonalDiscovery(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetPersonalDiscovery retrieves the caller's discovery record
func (s *UserService) GetPersonalDiscovery(ctx context.Context, userID int64) (*models.PersonalDiscovery, error) {
	return s.profiles.GetPersonalDiscovery(ctx, userID)
}

// SaveCV creates or replaces the caller's CV record
func (s *UserService) SaveCV(ctx context.Context, userID int64, req *dto.UpsertCVRequest) (*models.CV, error) {
	rec := &models.CV{
		UserID:  userID,
		FileURL: req.FileURL,
		Summary: req.Summary,
	}
	if err := s.profiles.UpsertCV(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetCV retrieves the caller's CV record
func (s *UserService) GetCV(ctx context.Context, userID int64) (*models.CV, error) {
	return s.profiles.GetCV(ctx, userID)
}
