package services

import (
	"context"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// EventStore is the persistence surface the event service needs
type EventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context) ([]models.Event, error)
	Register(ctx context.Context, userID, eventID int64) error
	Unregister(ctx context.Context, userID, eventID int64) error
	IsRegistered(ctx context.Context, userID, eventID int64) (bool, error)
}

// EventService handles events and user registrations
type EventService struct {
	events EventStore
}

// NewEventService creates a new event service instance
func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

// CreateEvent persists a new event
func (s *EventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	}

	if _, err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// GetEventByID retrieves an event by ID
func (s *EventService) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid event ID")
	}
	return s.events.GetByID(ctx, id)
}

// GetAllEvents retrieves all events
func (s *EventService) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.GetAll(ctx)
}

// Register registers a user for an event
func (s *EventService) Register(ctx context.Context, userID, eventID int64) error {
	if eventID <= 0 {
		return apperrors.NewBadRequestError("invalid event ID")
	}

	if err := s.events.Register(ctx, userID, eventID); err != nil {
		return err
	}

	logger.Info().Int64("userID", userID).Int64("eventID", eventID).Msg("User registered for event")
	return nil
}

// Unregister removes a user's event registration
func (s *EventService) Unregister(ctx context.Context, userID, eventID int64) error {
	if eventID <= 0 {
		return apperrors.NewBadRequestError("invalid event ID")
	}
	return s.events.Unregister(ctx, userID, eventID)
}

// RegistrationStatus reports whether a user is registered for an event
// without modifying anything
func (s *EventService) RegistrationStatus(ctx context.Context, userID, eventID int64) (bool, error) {
	if eventID <= 0 {
		return false, apperrors.NewBadRequestError("invalid event ID")
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return false, err
	}

	return s.events.IsRegistered(ctx, userID, eventID)
}
