package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// ProfileRepository handles the one-to-one profile records hanging off a user:
// scholarship assessment, personal discovery, CV. All writes are upserts keyed
// on the unique user_id.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// UpsertScholarshipAssessment creates or replaces the user's record
func (r *ProfileRepository) UpsertScholarshipAssessment(ctx context.Context, rec *models.ScholarshipAssessment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO scholarship_assessments (user_id, matrix, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET matrix = EXCLUDED.matrix, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		rec.UserID, rec.Matrix, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting scholarship assessment: %w", err)
	}
	return nil
}

// GetScholarshipAssessment retrieves the user's record
func (r *ProfileRepository) GetScholarshipAssessment(ctx context.Context, userID int64) (*models.ScholarshipAssessment, error) {
	var rec models.ScholarshipAssessment
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, matrix, notes, created_at, updated_at
		FROM scholarship_assessments
		WHERE user_id = $1`, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.Matrix, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing get scholarship assessment query: %w", err)
	}
	return &rec, nil
}

// UpsertPersonalDiscovery creates or replaces the user's record
func (r *ProfileRepository) UpsertPersonalDiscovery(ctx context.Context, rec *models.PersonalDiscovery) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO personal_discoveries (user_id, strengths, interests, values)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET strengths = EXCLUDED.strengths, interests = EXCLUDED.interests,
		    values = EXCLUDED.values, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		rec.UserID, rec.Strengths, rec.Interests, rec.Values,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting personal discovery: %w", err)
	}
	return nil
}

// GetPersonalDiscovery retrieves the user's record
func (r *ProfileRepository) GetPersonalDiscovery(ctx context.Context, userID int64) (*models.PersonalDiscovery, error) {
	var rec models.PersonalDiscovery
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, strengths, interests, values, created_at, updated_at
		FROM personal_discoveries
		WHERE user_id = $1`, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.Strengths, &rec.Interests, &rec.Values, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing get personal discovery query: %w", err)
	}
	return &rec, nil
}

// UpsertCV creates or replaces the user's CV record
func (r *ProfileRepository) UpsertCV(ctx context.Context, rec *models.CV) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO cvs (user_id, file_url, summary)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET file_url = EXCLUDED.file_url, summary = EXCLUDED.summary, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		rec.UserID, rec.FileURL, rec.Summary,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting cv: %w", err)
	}
	return nil
}

// GetCV retrieves the user's CV record
func (r *ProfileRepository) GetCV(ctx context.Context, userID int64) (*models.CV, error) {
	var rec models.CV
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, file_url, summary, created_at, updated_at
		FROM cvs
		WHERE user_id = $1`, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.FileURL, &rec.Summary, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing get cv query: %w", err)
	}
	return &rec, nil
}
