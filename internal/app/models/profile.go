package models

import "time"

// ScholarshipAssessment is a one-to-one profile record per user (unique userId)
type ScholarshipAssessment struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Matrix    string    `json:"matrix" db:"matrix"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PersonalDiscovery is a one-to-one profile record per user (unique userId)
type PersonalDiscovery struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Strengths string    `json:"strengths" db:"strengths"`
	Interests string    `json:"interests" db:"interests"`
	Values    string    `json:"values" db:"values"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CV is a one-to-one profile record per user (unique userId)
type CV struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	FileURL   string    `json:"fileUrl" db:"file_url"`
	Summary   string    `json:"summary" db:"summary"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
