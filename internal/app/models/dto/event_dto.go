package dto

import "time"

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=200"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
}

// RegistrationStatusResponse answers the is-registered existence check
type RegistrationStatusResponse struct {
	Registered bool `json:"registered"`
}
