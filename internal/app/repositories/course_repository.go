package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses and lessons
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course and returns its generated ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (title, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		course.Title, course.Description,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error executing create course query: %w", err)
	}

	return course.ID, nil
}

// GetByID retrieves a course with its lessons ordered by order_index
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx, `
		SELECT id, title, description, created_at, updated_at
		FROM courses
		WHERE id = $1`, id,
	).Scan(&course.ID, &course.Title, &course.Description, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error executing get course query: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, content, order_index, created_at
		FROM lessons
		WHERE course_id = $1
		ORDER BY order_index`, id)
	if err != nil {
		return nil, fmt.Errorf("error executing get lessons query: %w", err)
	}
	defer rows.Close()

	course.Lessons = []models.Lesson{}
	for rows.Next() {
		var lesson models.Lesson
		if err := rows.Scan(&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content, &lesson.OrderIndex, &lesson.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		course.Lessons = append(course.Lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lesson rows: %w", err)
	}

	return &course, nil
}

// GetAll retrieves all courses without their lessons
func (r *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, created_at, updated_at
		FROM courses
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error executing list courses query: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Title, &course.Description, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// CreateLesson inserts a new lesson into a course
func (r *CourseRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO lessons (course_id, title, content, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		lesson.CourseID, lesson.Title, lesson.Content, lesson.OrderIndex,
	).Scan(&lesson.ID, &lesson.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "lessons_course_id_order_index_key") {
			return 0, apperrors.ErrLessonOrderTaken
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error executing create lesson query: %w", err)
	}

	return lesson.ID, nil
}

// GetLesson retrieves a lesson by ID
func (r *CourseRepository) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.QueryRow(ctx, `
		SELECT id, course_id, title, content, order_index, created_at
		FROM lessons
		WHERE id = $1`, id,
	).Scan(&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content, &lesson.OrderIndex, &lesson.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error executing get lesson query: %w", err)
	}

	return &lesson, nil
}
