package models

import "time"

type ConversationResponse struct {
	ID          uint          `json:"id"`
	OtherUser   *UserResponse `json:"other_user"`
	ProviderID  *uint         `json:"provider_id"`
	HallID      *uint         `json:"hall_id"`
	DressID     *uint         `json:"dress_id"`
	LastMessage *Message      `json:"last_message"`
	Unread      int           `json:"unread"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
