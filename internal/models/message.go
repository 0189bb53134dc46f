package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	ConversationID uint         `json:"conversation_id"`
	Conversation   Conversation `json:"-"`
	SenderID       uint         `json:"sender_id"`
	Content        string       `json:"content"`
	Images         ImageList    `gorm:"type:jsonb" json:"images"`
	SeenAt         *time.Time   `json:"seen_at"`
}

// HasContent reports whether the message carries anything deliverable. A
// message with empty text and no images must be rejected before any store
// call is made.
func (message *Message) HasContent() bool {
	return message.Content != "" || len(message.Images) > 0
}

func (message *Message) IsRead() bool {
	return message.SeenAt != nil
}
