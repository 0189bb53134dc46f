package models

import (
	"gorm.io/gorm"
)

// Conversation is a durable channel between exactly two users, optionally
// scoped to the listing it was started from. Participants are stored in
// normalized order (lower user id first) so that the identity index matches
// regardless of who initiated the conversation.
type Conversation struct {
	gorm.Model
	UserOneID  uint      `gorm:"not null;uniqueIndex:idx_conversation_identity" json:"user_one_id"`
	UserTwoID  uint      `gorm:"not null;uniqueIndex:idx_conversation_identity" json:"user_two_id"`
	ContextKey string    `gorm:"not null;default:'none';uniqueIndex:idx_conversation_identity" json:"-"`
	ProviderID *uint     `json:"provider_id"`
	HallID     *uint     `json:"hall_id"`
	DressID    *uint     `json:"dress_id"`
	UserOne    User      `json:"-"`
	UserTwo    User      `json:"-"`
	Messages   []Message `json:"-"`
}

func NewConversation(userA, userB uint, context ConversationContext) *Conversation {
	if userB < userA {
		userA, userB = userB, userA
	}
	return &Conversation{
		UserOneID:  userA,
		UserTwoID:  userB,
		ContextKey: context.Key(),
		ProviderID: context.ProviderID,
		HallID:     context.HallID,
		DressID:    context.DressID,
	}
}

func (conversation *Conversation) HasParticipant(userID uint) bool {
	return conversation.UserOneID == userID || conversation.UserTwoID == userID
}

func (conversation *Conversation) OtherParticipant(userID uint) uint {
	if conversation.UserOneID == userID {
		return conversation.UserTwoID
	}
	return conversation.UserOneID
}

func (conversation *Conversation) Context() ConversationContext {
	return ConversationContext{
		ProviderID: conversation.ProviderID,
		HallID:     conversation.HallID,
		DressID:    conversation.DressID,
	}
}

func (conversation *Conversation) ToConversationResponse(otherUser *UserResponse, lastMessage *Message, unread int) ConversationResponse {
	return ConversationResponse{
		ID:          conversation.ID,
		OtherUser:   otherUser,
		ProviderID:  conversation.ProviderID,
		HallID:      conversation.HallID,
		DressID:     conversation.DressID,
		LastMessage: lastMessage,
		Unread:      unread,
		CreatedAt:   conversation.CreatedAt,
		UpdatedAt:   conversation.UpdatedAt,
	}
}
