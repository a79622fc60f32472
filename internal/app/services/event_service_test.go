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

type registrationKey struct {
	userID  int64
	eventID int64
}

// fakeEventStore is an in-memory EventStore for service tests
type fakeEventStore struct {
	events        map[int64]*models.Event
	registrations map[registrationKey]bool
	nextID        int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events:        make(map[int64]*models.Event),
		registrations: make(map[registrationKey]bool),
		nextID:        1,
	}
}

func (f *fakeEventStore) Create(ctx context.Context, event *models.Event) (int64, error) {
	event.ID = f.nextID
	f.nextID++
	cp := *event
	f.events[event.ID] = &cp
	return event.ID, nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	cp := *event
	return &cp, nil
}

func (f *fakeEventStore) GetAll(ctx context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventStore) Register(ctx context.Context, userID, eventID int64) error {
	if _, ok := f.events[eventID]; !ok {
		return apperrors.ErrEventNotFound
	}
	key := registrationKey{userID, eventID}
	if f.registrations[key] {
		return apperrors.ErrAlreadyRegistered
	}
	f.registrations[key] = true
	return nil
}

func (f *fakeEventStore) Unregister(ctx context.Context, userID, eventID int64) error {
	key := registrationKey{userID, eventID}
	if !f.registrations[key] {
		return apperrors.ErrNotRegistered
	}
	delete(f.registrations, key)
	return nil
}

func (f *fakeEventStore) IsRegistered(ctx context.Context, userID, eventID int64) (bool, error) {
	return f.registrations[registrationKey{userID, eventID}], nil
}

func createdEvent(t *testing.T, service *EventService) *models.Event {
	t.Helper()

	event, err := service.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Title:       "Scholarship Info Night",
		Description: "Live Q&A with mentors",
		Location:    "Online",
		StartsAt:    time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return event
}

func TestEventService_CreateAndGet(t *testing.T) {
	service := NewEventService(newFakeEventStore())

	event := createdEvent(t, service)
	assert.NotZero(t, event.ID)

	got, err := service.GetEventByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Title, got.Title)

	_, err = service.GetEventByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	_, err = service.GetEventByID(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestEventService_RegisterLifecycle(t *testing.T) {
	service := NewEventService(newFakeEventStore())
	ctx := context.Background()

	event := createdEvent(t, service)

	require.NoError(t, service.Register(ctx, 7, event.ID))

	registered, err := service.RegistrationStatus(ctx, 7, event.ID)
	require.NoError(t, err)
	assert.True(t, registered)

	// double registration conflicts
	err = service.Register(ctx, 7, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)

	require.NoError(t, service.Unregister(ctx, 7, event.ID))

	registered, err = service.RegistrationStatus(ctx, 7, event.ID)
	require.NoError(t, err)
	assert.False(t, registered)

	err = service.Unregister(ctx, 7, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotRegistered)
}

func TestEventService_Register_UnknownEvent(t *testing.T) {
	service := NewEventService(newFakeEventStore())

	err := service.Register(context.Background(), 7, 42)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestEventService_RegistrationStatus_UnknownEvent(t *testing.T) {
	service := NewEventService(newFakeEventStore())

	_, err := service.RegistrationStatus(context.Background(), 7, 42)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
