package domain

import "time"

// Traveler is an entry in a user's personal contact list of travelers.
// Every traveler belongs to exactly one user and is invisible to everyone else.
type Traveler struct {
	ID          int64
	UserID      int64
	Name        string
	Email       string
	Phone       string
	Destination string
	CreatedAt   time.Time
}
