package domain

import "time"

// Message is an anonymous answer left for a user. Messages are immutable;
// the only mutation in their lifecycle is deletion by the owning user.
type Message struct {
	MessageID string
	UserID    string
	Question  string
	Answer    string
	CreatedAt time.Time
}
