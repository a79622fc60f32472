package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
)

// CareerRepository handles database operations for the guest assessment flow
type CareerRepository struct {
	db *pgxpool.Pool
}

// NewCareerRepository creates a new CareerRepository
func NewCareerRepository(db *pgxpool.Pool) *CareerRepository {
	return &CareerRepository{db: db}
}

// CreateCareerUser inserts a new guest identity
func (r *CareerRepository) CreateCareerUser(ctx context.Context, user *models.CareerUser) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO career_users (session_token, auth_user_id)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		user.SessionToken, user.AuthUserID,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "career_users_session_token_key") {
			return 0, apperrors.ErrConflict
		}
		return 0, fmt.Errorf("error executing create career user query: %w", err)
	}

	return user.ID, nil
}

// GetCareerUserByToken retrieves a guest identity by its session token
func (r *CareerRepository) GetCareerUserByToken(ctx context.Context, token string) (*models.CareerUser, error) {
	var user models.CareerUser
	err := r.db.QueryRow(ctx, `
		SELECT id, session_token, auth_user_id, created_at
		FROM career_users
		WHERE session_token = $1`, token,
	).Scan(&user.ID, &user.SessionToken, &user.AuthUserID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCareerUserNotFound
		}
		return nil, fmt.Errorf("error executing get career user query: %w", err)
	}

	return &user, nil
}

// CreateAssessment inserts a new assessment in IN_PROGRESS state
func (r *CareerRepository) CreateAssessment(ctx context.Context, assessment *models.CareerAssessment) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO career_assessments (career_user_id, status, answers)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		assessment.CareerUserID, assessment.Status, assessment.Answers,
	).Scan(&assessment.ID, &assessment.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCareerUserNotFound
		}
		return 0, fmt.Errorf("error executing create assessment query: %w", err)
	}

	return assessment.ID, nil
}

// GetAssessment retrieves an assessment by ID
func (r *CareerRepository) GetAssessment(ctx context.Context, id int64) (*models.CareerAssessment, error) {
	return r.getAssessment(ctx, "id = $1", id)
}

// GetAssessmentByShareCode retrieves a shared assessment by its public code
func (r *CareerRepository) GetAssessmentByShareCode(ctx context.Context, code string) (*models.CareerAssessment, error) {
	return r.getAssessment(ctx, "share_code = $1 AND is_shared", code)
}

func (r *CareerRepository) getAssessment(ctx context.Context, where string, arg interface{}) (*models.CareerAssessment, error) {
	query := `
		SELECT id, career_user_id, status, answers, suggested_path, confidence_score,
		       matching_factors, share_code, is_shared, completed_at, created_at
		FROM career_assessments
		WHERE ` + where

	var a models.CareerAssessment
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.CareerUserID, &a.Status, &a.Answers, &a.SuggestedPath,
		&a.ConfidenceScore, &a.MatchingFactors, &a.ShareCode, &a.IsShared,
		&a.CompletedAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("error executing get assessment query: %w", err)
	}

	return &a, nil
}

// CompleteAssessment moves an IN_PROGRESS assessment to COMPLETED and folds
// its outcome into the per-path analytics aggregate, in one transaction.
// The status guard on the update makes a concurrent completion lose cleanly,
// and the aggregate is maintained by a single conditional upsert so
// concurrent completions for the same path cannot drop an update.
func (r *CareerRepository) CompleteAssessment(ctx context.Context, assessmentID int64, suggestedPath string, confidenceScore float64, matchingFactors []string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE career_assessments
			SET status = $1, suggested_path = $2, confidence_score = $3,
			    matching_factors = $4, completed_at = $5
			WHERE id = $6 AND status = $7`,
			models.AssessmentCompleted, suggestedPath, confidenceScore,
			matchingFactors, time.Now(), assessmentID, models.AssessmentInProgress)
		if err != nil {
			return fmt.Errorf("error updating assessment: %w", err)
		}

		if result.RowsAffected() == 0 {
			return apperrors.ErrInvalidTransition
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO career_analytics (career_path, total_suggestions, average_confidence)
			VALUES ($1, 1, $2)
			ON CONFLICT (career_path) DO UPDATE
			SET average_confidence = (career_analytics.average_confidence * career_analytics.total_suggestions + EXCLUDED.average_confidence)
			                         / (career_analytics.total_suggestions + 1),
			    total_suggestions = career_analytics.total_suggestions + 1,
			    updated_at = NOW()`,
			suggestedPath, confidenceScore)
		if err != nil {
			return fmt.Errorf("error updating career analytics: %w", err)
		}

		return nil
	})
}

// AbandonAssessment marks an in-progress assessment abandoned. Abandoned
// runs never reach the analytics aggregate.
func (r *CareerRepository) AbandonAssessment(ctx context.Context, assessmentID int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE career_assessments
		SET status = $1
		WHERE id = $2 AND status = $3`,
		models.AssessmentAbandoned, assessmentID, models.AssessmentInProgress)
	if err != nil {
		return fmt.Errorf("error executing abandon assessment query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}

	return nil
}

// SetShareCode marks an assessment shared under the given code. A colliding
// code surfaces as ErrShareCodeCollision so the caller can retry with a new
// one.
func (r *CareerRepository) SetShareCode(ctx context.Context, assessmentID int64, code string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE career_assessments
		SET share_code = $1, is_shared = TRUE
		WHERE id = $2`,
		code, assessmentID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "career_assessments_share_code_key") {
			return apperrors.ErrShareCodeCollision
		}
		return fmt.Errorf("error executing set share code query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAssessmentNotFound
	}

	return nil
}

// CreateFeedback inserts the single feedback record an assessment may have
func (r *CareerRepository) CreateFeedback(ctx context.Context, feedback *models.CareerFeedback) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO career_feedbacks (assessment_id, rating, is_relevant, would_recommend, comments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		feedback.AssessmentID, feedback.Rating, feedback.IsRelevant,
		feedback.WouldRecommend, feedback.Comments,
	).Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "career_feedbacks_assessment_id_key") {
			return 0, apperrors.ErrFeedbackAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrAssessmentNotFound
		}
		return 0, fmt.Errorf("error executing create feedback query: %w", err)
	}

	return feedback.ID, nil
}

// GetAnalytics retrieves the aggregate row for a career path
func (r *CareerRepository) GetAnalytics(ctx context.Context, careerPath string) (*models.CareerAnalytics, error) {
	var a models.CareerAnalytics
	err := r.db.QueryRow(ctx, `
		SELECT career_path, total_suggestions, average_confidence, updated_at
		FROM career_analytics
		WHERE career_path = $1`, careerPath,
	).Scan(&a.CareerPath, &a.TotalSuggestions, &a.AverageConfidence, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing get analytics query: %w", err)
	}

	return &a, nil
}
