package models

import "time"

// Plan represents a subscription tier
type Plan struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	DurationDays int       `json:"durationDays" db:"duration_days"`
	Services     []string  `json:"services" db:"services"`
	Features     []string  `json:"features" db:"features"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
