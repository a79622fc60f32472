package services

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// fakeSubscriptionStore is an in-memory SubscriptionStore for service tests
type fakeSubscriptionStore struct {
	subs   map[int64]*models.Subscription
	proofs map[int64]*models.PaymentProof
	nextID int64
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{
		subs:   make(map[int64]*models.Subscription),
		proofs: make(map[int64]*models.PaymentProof),
		nextID: 1,
	}
}

func (f *fakeSubscriptionStore) CreateWithProof(ctx context.Context, sub *models.Subscription, proof *models.PaymentProof) error {
	sub.ID = f.nextID
	f.nextID++
	proof.ID = f.nextID
	f.nextID++
	proof.SubscriptionID = sub.ID

	subCp := *sub
	proofCp := *proof
	f.subs[sub.ID] = &subCp
	f.proofs[proof.ID] = &proofCp
	return nil
}

func (f *fakeSubscriptionStore) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, apperrors.ErrSubscriptionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (f *fakeSubscriptionStore) GetByUser(ctx context.Context, userID int64) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionStore) GetProofByID(ctx context.Context, id int64) (*models.PaymentProof, error) {
	proof, ok := f.proofs[id]
	if !ok {
		return nil, apperrors.ErrPaymentProofNotFound
	}
	cp := *proof
	return &cp, nil
}

func (f *fakeSubscriptionStore) ListProofs(ctx context.Context, status *models.PaymentProofStatus, page, pageSize int) ([]models.PaymentProof, int64, error) {
	var out []models.PaymentProof
	for _, p := range f.proofs {
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSubscriptionStore) ReviewProof(ctx context.Context, proofID int64, decision models.PaymentProofStatus, reviewerID int64, subscriptionStatus models.SubscriptionStatus) error {
	proof, ok := f.proofs[proofID]
	if !ok {
		return apperrors.ErrPaymentProofNotFound
	}
	if proof.Status != models.PaymentProofPending {
		return apperrors.ErrInvalidTransition
	}

	now := time.Now()
	proof.Status = decision
	proof.ReviewedBy = &reviewerID
	proof.ReviewedAt = &now

	if sub, ok := f.subs[proof.SubscriptionID]; ok {
		sub.Status = subscriptionStatus
	}
	return nil
}

// fakeFileStorage records saved files without touching the filesystem
type fakeFileStorage struct {
	saved int
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	f.saved++
	return "http://localhost:8080/uploads/" + subPath + "/" + fileHeader.Filename, nil
}

func (f *fakeFileStorage) DeleteFile(fileURL string) error { return nil }

func seededPlanStore(t *testing.T) (*fakePlanStore, *models.Plan) {
	t.Helper()

	store := newFakePlanStore()
	plan := &models.Plan{
		Name:         "Starter Mentorship",
		Description:  "Three months of guided mentorship",
		Price:        149,
		DurationDays: 90,
		Services:     []string{"mentorship"},
		Features:     []string{},
	}
	_, err := store.Create(context.Background(), plan)
	require.NoError(t, err)
	return store, plan
}

func newSubscriptionService(subs SubscriptionStore, plans PlanStore, storage *fakeFileStorage) *SubscriptionService {
	return NewSubscriptionService(subs, plans, storage, zerolog.Nop())
}

func proofUpload() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "receipt.png", Size: 1024}
}

func admin() *models.User {
	return &models.User{ID: 99, Email: "admin@mentorhub.app", Role: models.RoleAdmin}
}

func TestSubscriptionService_RequestSubscription(t *testing.T) {
	plans, plan := seededPlanStore(t)
	subs := newFakeSubscriptionStore()
	storage := &fakeFileStorage{}
	service := newSubscriptionService(subs, plans, storage)

	sub, proof, err := service.RequestSubscription(context.Background(), 7, plan.ID, proofUpload())
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionPending, sub.Status)
	assert.Equal(t, int64(7), sub.UserID)
	assert.Equal(t, plan.ID, sub.PlanID)
	assert.Equal(t, sub.StartDate.AddDate(0, 0, plan.DurationDays), sub.EndDate)

	assert.Equal(t, models.PaymentProofPending, proof.Status)
	assert.Equal(t, sub.ID, proof.SubscriptionID)
	assert.Contains(t, proof.FileURL, "payment-proofs")
	assert.Equal(t, 1, storage.saved)
}

func TestSubscriptionService_RequestSubscription_MissingProof(t *testing.T) {
	plans, plan := seededPlanStore(t)
	service := newSubscriptionService(newFakeSubscriptionStore(), plans, &fakeFileStorage{})

	_, _, err := service.RequestSubscription(context.Background(), 7, plan.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSubscriptionService_RequestSubscription_UnknownPlan(t *testing.T) {
	storage := &fakeFileStorage{}
	service := newSubscriptionService(newFakeSubscriptionStore(), newFakePlanStore(), storage)

	_, _, err := service.RequestSubscription(context.Background(), 7, 42, proofUpload())
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
	assert.Zero(t, storage.saved, "no file should be stored for an unknown plan")
}

func TestSubscriptionService_ReviewPayment_Approve(t *testing.T) {
	plans, plan := seededPlanStore(t)
	subs := newFakeSubscriptionStore()
	service := newSubscriptionService(subs, plans, &fakeFileStorage{})

	sub, proof, err := service.RequestSubscription(context.Background(), 7, plan.ID, proofUpload())
	require.NoError(t, err)

	reviewed, err := service.ReviewPayment(context.Background(), admin(), proof.ID, models.PaymentProofApproved)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentProofApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, int64(99), *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)

	stored, err := subs.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, stored.Status)
}

func TestSubscriptionService_ReviewPayment_Reject(t *testing.T) {
	plans, plan := seededPlanStore(t)
	subs := newFakeSubscriptionStore()
	service := newSubscriptionService(subs, plans, &fakeFileStorage{})

	sub, proof, err := service.RequestSubscription(context.Background(), 7, plan.ID, proofUpload())
	require.NoError(t, err)

	reviewed, err := service.ReviewPayment(context.Background(), admin(), proof.ID, models.PaymentProofRejected)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentProofRejected, reviewed.Status)

	stored, err := subs.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionCancelled, stored.Status)
}

func TestSubscriptionService_ReviewPayment_RequiresAdmin(t *testing.T) {
	plans, plan := seededPlanStore(t)
	service := newSubscriptionService(newFakeSubscriptionStore(), plans, &fakeFileStorage{})

	_, proof, err := service.RequestSubscription(context.Background(), 7, plan.ID, proofUpload())
	require.NoError(t, err)

	mentor := &models.User{ID: 5, Role: models.RoleMentor}
	_, err = service.ReviewPayment(context.Background(), mentor, proof.ID, models.PaymentProofApproved)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = service.ReviewPayment(context.Background(), nil, proof.ID, models.PaymentProofApproved)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSubscriptionService_ReviewPayment_AlreadyReviewed(t *testing.T) {
	plans, plan := seededPlanStore(t)
	service := newSubscriptionService(newFakeSubscriptionStore(), plans, &fakeFileStorage{})

	_, proof, err := service.RequestSubscription(context.Background(), 7, plan.ID, proofUpload())
	require.NoError(t, err)

	_, err = service.ReviewPayment(context.Background(), admin(), proof.ID, models.PaymentProofApproved)
	require.NoError(t, err)

	_, err = service.ReviewPayment(context.Background(), admin(), proof.ID, models.PaymentProofRejected)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestSubscriptionService_ReviewPayment_InvalidDecision(t *testing.T) {
	plans, plan := seededPlanStore(t)
	service := newSubscriptionService(newFakeSubscriptionStore(), plans, &fakeFileStorage{})

	_, proof, err := service.RequestSubscription(context.Background(), 7, plan.ID, proofUpload())
	require.NoError(t, err)

	_, err = service.ReviewPayment(context.Background(), admin(), proof.ID, models.PaymentProofPending)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestSubscriptionService_ListPaymentProofs_FilterByStatus(t *testing.T) {
	plans, plan := seededPlanStore(t)
	subs := newFakeSubscriptionStore()
	service := newSubscriptionService(subs, plans, &fakeFileStorage{})

	_, first, err := service.RequestSubscription(context.Background(), 1, plan.ID, proofUpload())
	require.NoError(t, err)
	_, _, err = service.RequestSubscription(context.Background(), 2, plan.ID, proofUpload())
	require.NoError(t, err)

	_, err = service.ReviewPayment(context.Background(), admin(), first.ID, models.PaymentProofApproved)
	require.NoError(t, err)

	pending := models.PaymentProofPending
	proofs, total, err := service.ListPaymentProofs(context.Background(), &pending, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, proofs, 1)
	assert.Equal(t, models.PaymentProofPending, proofs[0].Status)

	_, total, err = service.ListPaymentProofs(context.Background(), nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
