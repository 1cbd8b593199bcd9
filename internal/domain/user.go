package domain

import "time"

// User is the domain model for a profile owner. Users are never mutated or
// deleted once created; the UserID doubles as the owner's capability token.
type User struct {
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
