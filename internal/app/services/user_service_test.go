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

// fakeUserStore is an in-memory UserStore for service tests
type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return user.ID, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateProgressStatus(ctx context.Context, id int64, status models.ProgressStatus) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.ProgressStatus = status
	user.UpdatedAt = time.Now()
	return nil
}

// fakeProfileStore is an in-memory ProfileStore keyed by user
type fakeProfileStore struct {
	scholarships map[int64]*models.ScholarshipAssessment
	discoveries  map[int64]*models.PersonalDiscovery
	cvs          map[int64]*models.CV
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		scholarships: make(map[int64]*models.ScholarshipAssessment),
		discoveries:  make(map[int64]*models.PersonalDiscovery),
		cvs:          make(map[int64]*models.CV),
	}
}

func (f *fakeProfileStore) UpsertScholarshipAssessment(ctx context.Context, rec *models.ScholarshipAssessment) error {
	cp := *rec
	f.scholarships[rec.UserID] = &cp
	return nil
}

func (f *fakeProfileStore) GetScholarshipAssessment(ctx context.Context, userID int64) (*models.ScholarshipAssessment, error) {
	rec, ok := f.scholarships[userID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("scholarship assessment not found")
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeProfileStore) UpsertPersonalDiscovery(ctx context.Context, rec *models.PersonalDiscovery) error {
	cp := *rec
	f.discoveries[rec.UserID] = &cp
	return nil
}

func (f *fakeProfileStore) GetPersonalDiscovery(ctx context.Context, userID int64) (*models.PersonalDiscovery, error) {
	rec, ok := f.discoveries[userID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("personal discovery not found")
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeProfileStore) UpsertCV(ctx context.Context, rec *models.CV) error {
	cp := *rec
	f.cvs[rec.UserID] = &cp
	return nil
}

func (f *fakeProfileStore) GetCV(ctx context.Context, userID int64) (*models.CV, error) {
	rec, ok := f.cvs[userID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("cv not found")
	}
	cp := *rec
	return &cp, nil
}

func seededUser(t *testing.T, store *fakeUserStore, role models.Role, progress models.ProgressStatus) *models.User {
	t.Helper()

	user := &models.User{
		Email:          string(role) + "@mentorhub.app",
		FirstName:      "Test",
		LastName:       "User",
		Role:           role,
		ProgressStatus: progress,
		IsActive:       true,
	}
	_, err := store.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserService_AdvanceProgress(t *testing.T) {
	users := newFakeUserStore()
	service := NewUserService(users, newFakeProfileStore())

	mentor := seededUser(t, users, models.RoleMentor, models.ProgressCompleted)
	member := seededUser(t, users, models.RoleUser, models.ProgressPaymentPending)

	updated, err := service.AdvanceProgress(context.Background(), mentor, member.ID, models.ProgressPersonalDiscoveryPending)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressPersonalDiscoveryPending, updated.ProgressStatus)

	stored, err := users.GetByID(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressPersonalDiscoveryPending, stored.ProgressStatus)
}

func TestUserService_AdvanceProgress_ActorRole(t *testing.T) {
	users := newFakeUserStore()
	service := NewUserService(users, newFakeProfileStore())

	member := seededUser(t, users, models.RoleUser, models.ProgressPaymentPending)
	other := seededUser(t, users, models.RoleTeamMember, models.ProgressCompleted)

	_, err := service.AdvanceProgress(context.Background(), member, member.ID, models.ProgressPersonalDiscoveryPending)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = service.AdvanceProgress(context.Background(), other, member.ID, models.ProgressPersonalDiscoveryPending)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = service.AdvanceProgress(context.Background(), nil, member.ID, models.ProgressPersonalDiscoveryPending)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUserService_AdvanceProgress_ForwardOnly(t *testing.T) {
	users := newFakeUserStore()
	service := NewUserService(users, newFakeProfileStore())

	admin := seededUser(t, users, models.RoleAdmin, models.ProgressCompleted)
	member := seededUser(t, users, models.RoleUser, models.ProgressCVAlignmentPending)

	_, err := service.AdvanceProgress(context.Background(), admin, member.ID, models.ProgressPersonalDiscoveryPending)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = service.AdvanceProgress(context.Background(), admin, member.ID, models.ProgressCVAlignmentPending)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = service.AdvanceProgress(context.Background(), admin, member.ID, models.ProgressStatus("GRADUATED"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = service.AdvanceProgress(context.Background(), admin, 999, models.ProgressCompleted)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_ProfileRecords_Upsert(t *testing.T) {
	users := newFakeUserStore()
	service := NewUserService(users, newFakeProfileStore())
	ctx := context.Background()

	member := seededUser(t, users, models.RoleUser, models.ProgressPaymentPending)

	saved, err := service.SaveScholarshipAssessment(ctx, member.ID, &dto.UpsertScholarshipAssessmentRequest{
		Matrix: `{"country":"DE"}`,
		Notes:  "first pass",
	})
	require.NoError(t, err)
	assert.Equal(t, member.ID, saved.UserID)

	// a second save replaces, it does not duplicate
	_, err = service.SaveScholarshipAssessment(ctx, member.ID, &dto.UpsertScholarshipAssessmentRequest{
		Matrix: `{"country":"NL"}`,
	})
	require.NoError(t, err)

	got, err := service.GetScholarshipAssessment(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, `{"country":"NL"}`, got.Matrix)

	_, err = service.GetPersonalDiscovery(ctx, member.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	cv, err := service.SaveCV(ctx, member.ID, &dto.UpsertCVRequest{FileURL: "http://localhost:8080/uploads/cvs/cv.pdf"})
	require.NoError(t, err)

	gotCV, err := service.GetCV(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, cv.FileURL, gotCV.FileURL)
}
