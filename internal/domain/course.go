package domain

import "time"

// Course is a catalog entry. OwnerID is zero when the course was created
// before ownership tracking existed or by an administrator script.
type Course struct {
	ID          int64
	Title       string
	Description string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
