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
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// EnrollmentRepository handles database operations for enrollments and
// lesson completions
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment with zero progress. The unique index on
// (user_id, course_id) decides races between concurrent enroll calls.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO enrollments (user_id, course_id, progress)
		VALUES ($1, $2, 0)
		RETURNING id, progress, created_at, updated_at`,
		enrollment.UserID, enrollment.CourseID,
	).Scan(&enrollment.ID, &enrollment.Progress, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_user_id_course_id_key") {
			logger.Warn().Int64("userID", enrollment.UserID).Int64("courseID", enrollment.CourseID).Msg("Duplicate enrollment attempt")
			return 0, apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error executing create enrollment query: %w", err)
	}

	return enrollment.ID, nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, course_id, progress, completed_at, created_at, updated_at
		FROM enrollments
		WHERE id = $1`, id,
	).Scan(
		&enrollment.ID, &enrollment.UserID, &enrollment.CourseID,
		&enrollment.Progress, &enrollment.CompletedAt, &enrollment.CreatedAt, &enrollment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error executing get enrollment query: %w", err)
	}

	return &enrollment, nil
}

// GetByUser retrieves all enrollments of a user with their courses attached
func (r *EnrollmentRepository) GetByUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.user_id, e.course_id, e.progress, e.completed_at, e.created_at, e.updated_at,
		       c.id, c.title, c.description, c.created_at, c.updated_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing get user enrollments query: %w", err)
	}
	defer rows.Close()

	enrollments := []models.Enrollment{}
	for rows.Next() {
		var enrollment models.Enrollment
		var course models.Course
		if err := rows.Scan(
			&enrollment.ID, &enrollment.UserID, &enrollment.CourseID,
			&enrollment.Progress, &enrollment.CompletedAt, &enrollment.CreatedAt, &enrollment.UpdatedAt,
			&course.ID, &course.Title, &course.Description, &course.CreatedAt, &course.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollment.Course = &course
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}

	return enrollments, nil
}

// CompleteLesson records a lesson completion and recomputes the enrollment
// progress inside one transaction. The unique index on
// (enrollment_id, lesson_id) makes repeat calls fail instead of double
// counting.
func (r *EnrollmentRepository) CompleteLesson(ctx context.Context, enrollmentID, lessonID int64) (*models.Enrollment, error) {
	var enrollment *models.Enrollment

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO lesson_completions (enrollment_id, lesson_id)
			VALUES ($1, $2)`,
			enrollmentID, lessonID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "lesson_completions_enrollment_id_lesson_id_key") {
				return apperrors.ErrLessonAlreadyCompleted
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrLessonNotFound
			}
			return fmt.Errorf("error inserting lesson completion: %w", err)
		}

		var completedCount, totalLessons int
		err = tx.QueryRow(ctx, `
			SELECT
				(SELECT COUNT(*) FROM lesson_completions WHERE enrollment_id = $1),
				(SELECT COUNT(*) FROM lessons l JOIN enrollments e ON l.course_id = e.course_id WHERE e.id = $1)`,
			enrollmentID,
		).Scan(&completedCount, &totalLessons)
		if err != nil {
			return fmt.Errorf("error counting lesson completions: %w", err)
		}

		progress := models.ComputeProgress(completedCount, totalLessons)

		var completedAt *time.Time
		if progress >= 100 {
			now := time.Now()
			completedAt = &now
		}

		var updated models.Enrollment
		err = tx.QueryRow(ctx, `
			UPDATE enrollments
			SET progress = $1,
			    completed_at = COALESCE(completed_at, $2),
			    updated_at = NOW()
			WHERE id = $3
			RETURNING id, user_id, course_id, progress, completed_at, created_at, updated_at`,
			progress, completedAt, enrollmentID,
		).Scan(
			&updated.ID, &updated.UserID, &updated.CourseID,
			&updated.Progress, &updated.CompletedAt, &updated.CreatedAt, &updated.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("error updating enrollment progress: %w", err)
		}

		enrollment = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}
