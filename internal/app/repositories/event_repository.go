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

// EventRepository handles database operations for events and registrations
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and returns its generated ID
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (title, description, location, starts_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		event.Title, event.Description, event.Location, event.StartsAt,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error executing create event query: %w", err)
	}

	return event.ID, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := r.db.QueryRow(ctx, `
		SELECT id, title, description, location, starts_at, created_at
		FROM events
		WHERE id = $1`, id,
	).Scan(&event.ID, &event.Title, &event.Description, &event.Location, &event.StartsAt, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error executing get event query: %w", err)
	}

	return &event, nil
}

// GetAll retrieves all events ordered by start time
func (r *EventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, location, starts_at, created_at
		FROM events
		ORDER BY starts_at`)
	if err != nil {
		return nil, fmt.Errorf("error executing list events query: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.Location, &event.StartsAt, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// Register inserts a registration row. The composite primary key decides
// races between concurrent registrations.
func (r *EventRepository) Register(ctx context.Context, userID, eventID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_events (user_id, event_id)
		VALUES ($1, $2)`,
		userID, eventID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyRegistered
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error executing register query: %w", err)
	}

	return nil
}

// Unregister removes a registration row
func (r *EventRepository) Unregister(ctx context.Context, userID, eventID int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM user_events
		WHERE user_id = $1 AND event_id = $2`,
		userID, eventID)
	if err != nil {
		return fmt.Errorf("error executing unregister query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotRegistered
	}

	return nil
}

// IsRegistered performs a side-effect-free existence check
func (r *EventRepository) IsRegistered(ctx context.Context, userID, eventID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_events WHERE user_id = $1 AND event_id = $2)`,
		userID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error executing is-registered query: %w", err)
	}

	return exists, nil
}
