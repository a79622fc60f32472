package models

import "time"

// Event represents a platform event users can register for
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	StartsAt    time.Time `json:"startsAt" db:"starts_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// UserEvent is the registration join with composite primary key (userId, eventId)
type UserEvent struct {
	UserID       int64     `json:"userId" db:"user_id"`
	EventID      int64     `json:"eventId" db:"event_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
}
