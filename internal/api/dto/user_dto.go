package dto

// CreateUserRequest payload for profile creation.
type CreateUserRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// UserResponse is the public view of a profile; internal fields stay hidden.
type UserResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
