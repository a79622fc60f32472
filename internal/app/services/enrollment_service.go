package services

import (
	"context"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// EnrollmentStore is the persistence surface the enrollment service needs
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetByUser(ctx context.Context, userID int64) ([]models.Enrollment, error)
	CompleteLesson(ctx context.Context, enrollmentID, lessonID int64) (*models.Enrollment, error)
}

// EnrollmentService handles course enrollment and lesson completion
type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseStore
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollments EnrollmentStore, courses CourseStore) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, courses: courses}
}

// Enroll enrolls a user into a course with zero progress
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	if courseID <= 0 {
		return nil, apperrors.NewBadRequestError("invalid course ID")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: course.ID,
	}
	if _, err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", userID).Int64("courseID", courseID).Msg("User enrolled in course")
	return enrollment, nil
}

// GetUserEnrollments lists the caller's enrollments with courses attached
func (s *EnrollmentService) GetUserEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	return s.enrollments.GetByUser(ctx, userID)
}

// CompleteLesson marks a lesson complete for the caller's enrollment and
// returns the enrollment with recalculated progress. The enrollment must
// belong to the caller and the lesson must belong to the enrolled course.
func (s *EnrollmentService) CompleteLesson(ctx context.Context, userID, enrollmentID, lessonID int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}

	lesson, err := s.courses.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.CourseID != enrollment.CourseID {
		return nil, apperrors.NewBadRequestError("lesson does not belong to the enrolled course")
	}

	return s.enrollments.CompleteLesson(ctx, enrollmentID, lessonID)
}
