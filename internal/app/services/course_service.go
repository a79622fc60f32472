package services

import (
	"context"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// CourseStore is the persistence surface the course service needs
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]models.Course, error)
	CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error)
	GetLesson(ctx context.Context, id int64) (*models.Lesson, error)
}

// CourseService handles course and lesson management
type CourseService struct {
	courses CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// CreateCourse persists a new course
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
	}

	if _, err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	course.Lessons = []models.Lesson{}
	return course, nil
}

// GetCourseByID retrieves a course with its ordered lessons
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid course ID")
	}
	return s.courses.GetByID(ctx, id)
}

// GetAllCourses retrieves all courses
func (s *CourseService) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses.GetAll(ctx)
}

// AddLesson appends a lesson to a course at an explicit position
func (s *CourseService) AddLesson(ctx context.Context, courseID int64, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if courseID <= 0 {
		return nil, apperrors.NewBadRequestError("invalid course ID")
	}

	lesson := &models.Lesson{
		CourseID:   courseID,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
	}

	if _, err := s.courses.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}
