package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64          `json:"id" db:"id" example:"1"`
	Email          string         `json:"email" db:"email" example:"user@mentorhub.app"`
	Password       string         `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName      string         `json:"firstName" db:"first_name" example:"John"`
	LastName       string         `json:"lastName" db:"last_name" example:"Doe"`
	Role           Role           `json:"role" db:"role" example:"USER"`
	ProgressStatus ProgressStatus `json:"progressStatus" db:"progress_status" example:"PAYMENT_PENDING"`
	IsActive       bool           `json:"isActive" db:"is_active" example:"true"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

// RefreshToken defines a stored refresh token based on the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// IsExpired reports whether the refresh token has passed its expiry
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
