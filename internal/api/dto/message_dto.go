package dto

import "time"

// CreateMessageRequest payload for anonymous answer submission.
type CreateMessageRequest struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

// DeleteMessageRequest payload. The owner proof travels in the body.
type DeleteMessageRequest struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

// MessageResponse is the public view of a message.
type MessageResponse struct {
	MessageID string    `json:"messageId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}
