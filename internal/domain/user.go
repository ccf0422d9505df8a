package domain

import "time"

// User represents a registered account. Email is the login identifier and is
// unique across the store.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
