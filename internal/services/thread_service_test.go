package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"weddingChat/internal/models"
	"weddingChat/internal/services"
)

func threadMessage(id, conversationID, senderID uint) models.Message {
	return models.Message{
		Model:          gorm.Model{ID: id},
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        "message",
	}
}

func TestMergeIncomingDiscardsOwnEcho(t *testing.T) {
	local := []models.Message{threadMessage(1, 9, 4)}

	merged, appended := services.MergeIncoming(local, threadMessage(2, 9, 4), 4)

	assert.False(t, appended)
	assert.Len(t, merged, 1)
}

func TestMergeIncomingDeduplicatesById(t *testing.T) {
	local := []models.Message{threadMessage(1, 9, 5), threadMessage(2, 9, 5)}

	merged, appended := services.MergeIncoming(local, threadMessage(2, 9, 5), 4)

	assert.False(t, appended)
	assert.Len(t, merged, 2)
}

func TestMergeIncomingAppendsNewMessage(t *testing.T) {
	local := []models.Message{threadMessage(1, 9, 5), threadMessage(2, 9, 5)}

	merged, appended := services.MergeIncoming(local, threadMessage(3, 9, 5), 4)

	assert.True(t, appended)
	assert.Len(t, merged, 3)
	assert.Equal(t, uint(3), merged[2].ID)
}

func TestMergeIncomingIsIdempotent(t *testing.T) {
	local := []models.Message{threadMessage(1, 9, 5)}
	incoming := threadMessage(2, 9, 5)

	once, appendedFirst := services.MergeIncoming(local, incoming, 4)
	twice, appendedSecond := services.MergeIncoming(once, incoming, 4)

	assert.True(t, appendedFirst)
	assert.False(t, appendedSecond)
	assert.Equal(t, once, twice)
}

func TestThreadSessionLifecycle(t *testing.T) {
	session := services.NewThreadSession(9, 4)
	assert.Equal(t, services.ThreadOpening, session.State())

	history := []models.Message{threadMessage(1, 9, 5), threadMessage(2, 9, 4)}
	session.Seed(history)
	assert.Equal(t, services.ThreadSubscribed, session.State())
	assert.Len(t, session.Messages(), 2)

	session.Close()
	assert.Equal(t, services.ThreadClosed, session.State())
	assert.Empty(t, session.Messages())
}

func TestThreadSessionIgnoresEventsBeforeSeed(t *testing.T) {
	session := services.NewThreadSession(9, 4)

	incoming := threadMessage(3, 9, 5)
	assert.False(t, session.Merge(&incoming))
	assert.Empty(t, session.Messages())
}

func TestThreadSessionSeedAfterCloseIsNoop(t *testing.T) {
	session := services.NewThreadSession(9, 4)
	session.Close()

	session.Seed([]models.Message{threadMessage(1, 9, 5)})

	assert.Equal(t, services.ThreadClosed, session.State())
	assert.Empty(t, session.Messages())
}

func TestThreadSessionMergeFiltersOtherConversations(t *testing.T) {
	session := services.NewThreadSession(9, 4)
	session.Seed(nil)

	foreign := threadMessage(3, 10, 5)
	assert.False(t, session.Merge(&foreign))

	incoming := threadMessage(3, 9, 5)
	assert.True(t, session.Merge(&incoming))
	assert.Len(t, session.Messages(), 1)
}
