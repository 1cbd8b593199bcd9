package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated    EventType = "user_created"
	EventMessageCreated EventType = "message_created"
	EventMessageDeleted EventType = "message_deleted"
)

// Event represents a domain event emitted by services. MessageID is empty
// for user events.
type Event struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	MessageID string    `json:"message_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
