package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weddingChat/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestNewConversationNormalizesParticipantOrder(t *testing.T) {
	a := models.NewConversation(7, 3, models.ConversationContext{})
	b := models.NewConversation(3, 7, models.ConversationContext{})

	assert.Equal(t, a.UserOneID, b.UserOneID)
	assert.Equal(t, a.UserTwoID, b.UserTwoID)
	assert.Equal(t, a.ContextKey, b.ContextKey)
	assert.Equal(t, uint(3), a.UserOneID)
	assert.Equal(t, uint(7), a.UserTwoID)
}

func TestConversationContextKeyPartitions(t *testing.T) {
	tests := []struct {
		name    string
		context models.ConversationContext
		key     string
	}{
		{"no context", models.ConversationContext{}, "none"},
		{"provider", models.ConversationContext{ProviderID: uintPtr(1)}, "provider:1"},
		{"hall", models.ConversationContext{HallID: uintPtr(1)}, "hall:1"},
		{"dress", models.ConversationContext{DressID: uintPtr(1)}, "dress:1"},
		{"other provider", models.ConversationContext{ProviderID: uintPtr(2)}, "provider:2"},
	}

	seen := make(map[string]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := tt.context.Key()
			assert.Equal(t, tt.key, key)
			if prev, ok := seen[key]; ok {
				t.Fatalf("context key %q collides with %q", tt.name, prev)
			}
			seen[key] = tt.name
		})
	}
}

func TestConversationContextValidity(t *testing.T) {
	assert.True(t, models.ConversationContext{}.IsValid())
	assert.True(t, models.ConversationContext{HallID: uintPtr(4)}.IsValid())
	assert.False(t, models.ConversationContext{
		ProviderID: uintPtr(1),
		HallID:     uintPtr(2),
	}.IsValid())
}

func TestConversationParticipants(t *testing.T) {
	conversation := models.NewConversation(10, 4, models.ConversationContext{})

	assert.True(t, conversation.HasParticipant(10))
	assert.True(t, conversation.HasParticipant(4))
	assert.False(t, conversation.HasParticipant(5))

	assert.Equal(t, uint(10), conversation.OtherParticipant(4))
	assert.Equal(t, uint(4), conversation.OtherParticipant(10))
}
