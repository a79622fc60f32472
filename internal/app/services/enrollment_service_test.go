package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// fakeEnrollmentStore is an in-memory EnrollmentStore for service tests.
// It recomputes progress from lesson completions the way the repository does.
type fakeEnrollmentStore struct {
	courses     *fakeCourseStore
	enrollments map[int64]*models.Enrollment
	completions map[int64]map[int64]bool // enrollmentID -> lessonID
	nextID      int64
}

func newFakeEnrollmentStore(courses *fakeCourseStore) *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		courses:     courses,
		enrollments: make(map[int64]*models.Enrollment),
		completions: make(map[int64]map[int64]bool),
		nextID:      1,
	}
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	for _, e := range f.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return 0, apperrors.ErrAlreadyEnrolled
		}
	}
	enrollment.ID = f.nextID
	f.nextID++
	cp := *enrollment
	f.enrollments[enrollment.ID] = &cp
	f.completions[enrollment.ID] = make(map[int64]bool)
	return enrollment.ID, nil
}

func (f *fakeEnrollmentStore) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	cp := *enrollment
	return &cp, nil
}

func (f *fakeEnrollmentStore) GetByUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, e := range f.enrollments {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) CompleteLesson(ctx context.Context, enrollmentID, lessonID int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[enrollmentID]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	if f.completions[enrollmentID][lessonID] {
		return nil, apperrors.ErrLessonAlreadyCompleted
	}
	f.completions[enrollmentID][lessonID] = true

	total := 0
	for _, l := range f.courses.lessons {
		if l.CourseID == enrollment.CourseID {
			total++
		}
	}
	enrollment.Progress = models.ComputeProgress(len(f.completions[enrollmentID]), total)
	if enrollment.Progress >= 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	cp := *enrollment
	return &cp, nil
}

// enrollmentFixture builds a course with three lessons and one enrollment
func enrollmentFixture(t *testing.T) (*EnrollmentService, *models.Enrollment, []int64, *fakeCourseStore) {
	t.Helper()

	courses := newFakeCourseStore()
	courseService := NewCourseService(courses)

	course, err := courseService.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Title:       "CV Alignment",
		Description: "Aligning your CV to scholarship programs",
	})
	require.NoError(t, err)

	lessonIDs := make([]int64, 0, 3)
	for i, title := range []string{"Structure", "Content", "Review"} {
		lesson, err := courseService.AddLesson(context.Background(), course.ID, &dto.CreateLessonRequest{
			Title:      title,
			Content:    "...",
			OrderIndex: i + 1,
		})
		require.NoError(t, err)
		lessonIDs = append(lessonIDs, lesson.ID)
	}

	service := NewEnrollmentService(newFakeEnrollmentStore(courses), courses)
	enrollment, err := service.Enroll(context.Background(), 7, course.ID)
	require.NoError(t, err)

	return service, enrollment, lessonIDs, courses
}

func TestEnrollmentService_Enroll(t *testing.T) {
	_, enrollment, _, _ := enrollmentFixture(t)

	assert.Equal(t, int64(7), enrollment.UserID)
	assert.Zero(t, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestEnrollmentService_Enroll_UnknownCourse(t *testing.T) {
	courses := newFakeCourseStore()
	service := NewEnrollmentService(newFakeEnrollmentStore(courses), courses)

	_, err := service.Enroll(context.Background(), 7, 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollmentService_Enroll_Twice(t *testing.T) {
	service, enrollment, _, _ := enrollmentFixture(t)

	_, err := service.Enroll(context.Background(), 7, enrollment.CourseID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollmentService_CompleteLesson_ProgressFloors(t *testing.T) {
	service, enrollment, lessonIDs, _ := enrollmentFixture(t)
	ctx := context.Background()

	updated, err := service.CompleteLesson(ctx, 7, enrollment.ID, lessonIDs[0])
	require.NoError(t, err)
	assert.Equal(t, 33, updated.Progress)

	updated, err = service.CompleteLesson(ctx, 7, enrollment.ID, lessonIDs[1])
	require.NoError(t, err)
	assert.Equal(t, 66, updated.Progress)

	updated, err = service.CompleteLesson(ctx, 7, enrollment.ID, lessonIDs[2])
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	assert.NotNil(t, updated.CompletedAt)
}

func TestEnrollmentService_CompleteLesson_Twice(t *testing.T) {
	service, enrollment, lessonIDs, _ := enrollmentFixture(t)
	ctx := context.Background()

	_, err := service.CompleteLesson(ctx, 7, enrollment.ID, lessonIDs[0])
	require.NoError(t, err)

	_, err = service.CompleteLesson(ctx, 7, enrollment.ID, lessonIDs[0])
	assert.ErrorIs(t, err, apperrors.ErrLessonAlreadyCompleted)
}

func TestEnrollmentService_CompleteLesson_NotOwner(t *testing.T) {
	service, enrollment, lessonIDs, _ := enrollmentFixture(t)

	_, err := service.CompleteLesson(context.Background(), 8, enrollment.ID, lessonIDs[0])
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEnrollmentService_CompleteLesson_LessonFromAnotherCourse(t *testing.T) {
	service, enrollment, _, courses := enrollmentFixture(t)
	ctx := context.Background()

	other := &models.Course{Title: "Other", Description: "Other"}
	_, err := courses.Create(ctx, other)
	require.NoError(t, err)

	stray := &models.Lesson{CourseID: other.ID, Title: "Stray", Content: "...", OrderIndex: 1}
	_, err = courses.CreateLesson(ctx, stray)
	require.NoError(t, err)

	_, err = service.CompleteLesson(ctx, 7, enrollment.ID, stray.ID)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestEnrollmentService_CompleteLesson_UnknownLesson(t *testing.T) {
	service, enrollment, _, _ := enrollmentFixture(t)

	_, err := service.CompleteLesson(context.Background(), 7, enrollment.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
}
