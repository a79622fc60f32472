package models

import "time"

// Course groups ordered lessons
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Lessons []Lesson `json:"lessons,omitempty"`
}

// Lesson belongs to a course; order_index makes the ordering explicit
type Lesson struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	OrderIndex int       `json:"orderIndex" db:"order_index"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Enrollment tracks one user's progress through one course.
// At most one enrollment exists per (userId, courseId).
type Enrollment struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"userId" db:"user_id"`
	CourseID    int64      `json:"courseId" db:"course_id"`
	Progress    int        `json:"progress" db:"progress"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	Course *Course `json:"course,omitempty"`
}

// IsCompleted reports whether the enrollment reached its terminal state
func (e *Enrollment) IsCompleted() bool {
	return e.Progress >= 100 && e.CompletedAt != nil
}

// LessonCompletion records a discrete lesson finish per enrollment,
// unique per (enrollmentId, lessonId).
type LessonCompletion struct {
	ID           int64     `json:"id" db:"id"`
	EnrollmentID int64     `json:"enrollmentId" db:"enrollment_id"`
	LessonID     int64     `json:"lessonId" db:"lesson_id"`
	CompletedAt  time.Time `json:"completedAt" db:"completed_at"`
}

// ComputeProgress returns the enrollment progress percentage for a count of
// completed lessons out of a course total, rounded down to an integer.
// A course with no lessons reads as zero progress.
func ComputeProgress(completedCount, totalLessons int) int {
	if totalLessons <= 0 {
		return 0
	}
	if completedCount >= totalLessons {
		return 100
	}
	return completedCount * 100 / totalLessons
}
