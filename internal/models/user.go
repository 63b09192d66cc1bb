package models

import "time"

// User is an account that owns journal entries and labels.
// PasswordHash is a bcrypt hash and never leaves the backend.
type User struct {
	ID           int
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
