package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"weddingChat/internal/errs"
	"weddingChat/internal/models"
	"weddingChat/internal/services"
)

type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) FindConversation(userA, userB uint, contextKey string) (*models.Conversation, error) {
	args := m.Called(userA, userB, contextKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockChatStore) CreateConversation(conversation *models.Conversation) error {
	args := m.Called(conversation)
	return args.Error(0)
}

func (m *MockChatStore) GetConversationById(conversationID uint) (*models.Conversation, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockChatStore) GetUserConversations(userID uint, page, size int) (*models.ConversationListResponse, []error) {
	args := m.Called(userID, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).([]error)
	}
	return args.Get(0).(*models.ConversationListResponse), nil
}

func (m *MockChatStore) SaveMessage(message *models.Message) (*models.Message, []error) {
	args := m.Called(message)
	if args.Get(0) == nil {
		return nil, args.Get(1).([]error)
	}
	return args.Get(0).(*models.Message), nil
}

func (m *MockChatStore) GetMessageById(messageID uint) (*models.Message, error) {
	args := m.Called(messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockChatStore) GetMessagesByConversationId(conversationID uint, page, size int) (*models.MessageListResponse, []error) {
	args := m.Called(conversationID, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).([]error)
	}
	return args.Get(0).(*models.MessageListResponse), nil
}

func (m *MockChatStore) MarkConversationMessagesSeen(conversationID, viewerID uint) (int64, error) {
	args := m.Called(conversationID, viewerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatStore) SeenMessage(messageIds []uint, seenerId uint) []error {
	args := m.Called(messageIds, seenerId)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]error)
}

func (m *MockChatStore) GetConversationUnReadMessagesForUser(conversationID, userID uint) (int, error) {
	args := m.Called(conversationID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockChatStore) GetTotalUnreadForUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatStore) CheckConversationExists(conversationID uint) bool {
	args := m.Called(conversationID)
	return args.Bool(0)
}

func (m *MockChatStore) CheckUserInConversation(userID, conversationID uint) bool {
	args := m.Called(userID, conversationID)
	return args.Bool(0)
}

type MockListingStore struct {
	mock.Mock
}

func (m *MockListingStore) CheckProviderExists(providerID uint) bool {
	args := m.Called(providerID)
	return args.Bool(0)
}

func (m *MockListingStore) CheckHallExists(hallID uint) bool {
	args := m.Called(hallID)
	return args.Bool(0)
}

func (m *MockListingStore) CheckDressExists(dressID uint) bool {
	args := m.Called(dressID)
	return args.Bool(0)
}

func newChatService() (*services.ChatService, *MockChatStore, *MockListingStore) {
	chatStore := new(MockChatStore)
	listingStore := new(MockListingStore)
	return services.NewChatService(chatStore, listingStore), chatStore, listingStore
}

func TestGetOrCreateConversationRejectsSelf(t *testing.T) {
	chatService, chatStore, _ := newChatService()

	conversation, errors := chatService.GetOrCreateConversation(5, 5, models.ConversationContext{})

	assert.Nil(t, conversation)
	assert.Len(t, errors, 1)
	assert.ErrorIs(t, errors[0], errs.ErrConversationWithSelf)
	chatStore.AssertNotCalled(t, "FindConversation", mock.Anything, mock.Anything, mock.Anything)
	chatStore.AssertNotCalled(t, "CreateConversation", mock.Anything)
}

func TestGetOrCreateConversationRejectsAmbiguousContext(t *testing.T) {
	chatService, chatStore, _ := newChatService()
	providerID, hallID := uint(1), uint(2)

	conversation, errors := chatService.GetOrCreateConversation(5, 6, models.ConversationContext{
		ProviderID: &providerID,
		HallID:     &hallID,
	})

	assert.Nil(t, conversation)
	assert.Len(t, errors, 1)
	assert.ErrorIs(t, errors[0], errs.ErrAmbiguousContext)
	chatStore.AssertNotCalled(t, "FindConversation", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrCreateConversationRejectsMissingListing(t *testing.T) {
	chatService, chatStore, listingStore := newChatService()
	hallID := uint(42)
	listingStore.On("CheckHallExists", hallID).Return(false)

	conversation, errors := chatService.GetOrCreateConversation(5, 6, models.ConversationContext{HallID: &hallID})

	assert.Nil(t, conversation)
	assert.Len(t, errors, 1)
	assert.ErrorIs(t, errors[0], errs.ErrListingNotFound)
	chatStore.AssertNotCalled(t, "CreateConversation", mock.Anything)
}

func TestGetOrCreateConversationReturnsExisting(t *testing.T) {
	chatService, chatStore, _ := newChatService()
	existing := models.NewConversation(5, 6, models.ConversationContext{})
	existing.ID = 77
	chatStore.On("FindConversation", uint(5), uint(6), "none").Return(existing, nil)

	conversation, errors := chatService.GetOrCreateConversation(5, 6, models.ConversationContext{})

	assert.Empty(t, errors)
	assert.Equal(t, uint(77), conversation.ID)
	chatStore.AssertNotCalled(t, "CreateConversation", mock.Anything)
}

func TestGetOrCreateConversationCreatesWhenMissing(t *testing.T) {
	chatService, chatStore, listingStore := newChatService()
	providerID := uint(9)
	listingStore.On("CheckProviderExists", providerID).Return(true)
	chatStore.On("FindConversation", uint(6), uint(5), "provider:9").Return(nil, nil)
	chatStore.On("CreateConversation", mock.AnythingOfType("*models.Conversation")).Return(nil)

	conversation, errors := chatService.GetOrCreateConversation(6, 5, models.ConversationContext{ProviderID: &providerID})

	assert.Empty(t, errors)
	assert.Equal(t, uint(5), conversation.UserOneID)
	assert.Equal(t, uint(6), conversation.UserTwoID)
	assert.Equal(t, "provider:9", conversation.ContextKey)
	chatStore.AssertExpectations(t)
}

func TestGetOrCreateConversationReselectsAfterRace(t *testing.T) {
	chatService, chatStore, _ := newChatService()
	winner := models.NewConversation(5, 6, models.ConversationContext{})
	winner.ID = 88
	chatStore.On("FindConversation", uint(5), uint(6), "none").Return(nil, nil).Once()
	chatStore.On("CreateConversation", mock.AnythingOfType("*models.Conversation")).Return(gorm.ErrDuplicatedKey)
	chatStore.On("FindConversation", uint(5), uint(6), "none").Return(winner, nil).Once()

	conversation, errors := chatService.GetOrCreateConversation(5, 6, models.ConversationContext{})

	assert.Empty(t, errors)
	assert.Equal(t, uint(88), conversation.ID)
	chatStore.AssertExpectations(t)
}

func TestGetOrCreateConversationContextsArePartitioned(t *testing.T) {
	chatService, chatStore, listingStore := newChatService()
	hallID := uint(3)
	listingStore.On("CheckHallExists", hallID).Return(true)

	plain := models.NewConversation(5, 6, models.ConversationContext{})
	plain.ID = 1
	chatStore.On("FindConversation", uint(5), uint(6), "none").Return(plain, nil)
	chatStore.On("FindConversation", uint(5), uint(6), "hall:3").Return(nil, nil)
	chatStore.On("CreateConversation", mock.AnythingOfType("*models.Conversation")).Return(nil)

	first, errors := chatService.GetOrCreateConversation(5, 6, models.ConversationContext{})
	assert.Empty(t, errors)
	second, errors := chatService.GetOrCreateConversation(5, 6, models.ConversationContext{HallID: &hallID})
	assert.Empty(t, errors)

	assert.Equal(t, uint(1), first.ID)
	assert.NotEqual(t, first.ContextKey, second.ContextKey)
	chatStore.AssertExpectations(t)
}

func TestSendMessageRejectsInvalidWithoutStoreCall(t *testing.T) {
	chatService, chatStore, _ := newChatService()

	message, errors := chatService.SendMessage(&models.Message{
		ConversationID: 1,
		SenderID:       2,
	})

	assert.Nil(t, message)
	assert.Len(t, errors, 1)
	assert.ErrorIs(t, errors[0], errs.ErrEmptyMessage)
	chatStore.AssertNotCalled(t, "SaveMessage", mock.Anything)
	chatStore.AssertNotCalled(t, "CheckConversationExists", mock.Anything)
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	chatService, chatStore, _ := newChatService()
	chatStore.On("CheckConversationExists", uint(1)).Return(true)
	chatStore.On("CheckUserInConversation", uint(2), uint(1)).Return(false)

	message, errors := chatService.SendMessage(&models.Message{
		ConversationID: 1,
		SenderID:       2,
		Content:        "hi",
	})

	assert.Nil(t, message)
	assert.Len(t, errors, 1)
	assert.ErrorIs(t, errors[0], errs.ErrUserNotInConversation)
	chatStore.AssertNotCalled(t, "SaveMessage", mock.Anything)
}

func TestSendMessagePersistsValidMessage(t *testing.T) {
	chatService, chatStore, _ := newChatService()
	message := &models.Message{ConversationID: 1, SenderID: 2, Content: "hi"}
	saved := &models.Message{ConversationID: 1, SenderID: 2, Content: "hi"}
	saved.ID = 10
	chatStore.On("CheckConversationExists", uint(1)).Return(true)
	chatStore.On("CheckUserInConversation", uint(2), uint(1)).Return(true)
	chatStore.On("SaveMessage", message).Return(saved, nil)

	result, errors := chatService.SendMessage(message)

	assert.Empty(t, errors)
	assert.Equal(t, uint(10), result.ID)
	chatStore.AssertExpectations(t)
}

func TestGetConversationMessagesMarksSeenForViewer(t *testing.T) {
	chatService, chatStore, _ := newChatService()
	history := &models.MessageListResponse{Page: 1, Size: 20}
	chatStore.On("CheckUserInConversation", uint(4), uint(9)).Return(true)
	chatStore.On("MarkConversationMessagesSeen", uint(9), uint(4)).Return(int64(3), nil)
	chatStore.On("GetMessagesByConversationId", uint(9), 1, 20).Return(history, nil)

	result, errors := chatService.GetConversationMessages(9, 4, 1, 20)

	assert.Empty(t, errors)
	assert.Equal(t, history, result)
	chatStore.AssertExpectations(t)
}

func TestGetConversationMessagesRejectsNonParticipant(t *testing.T) {
	chatService, chatStore, _ := newChatService()
	chatStore.On("CheckUserInConversation", uint(4), uint(9)).Return(false)

	result, errors := chatService.GetConversationMessages(9, 4, 1, 20)

	assert.Nil(t, result)
	assert.Len(t, errors, 1)
	assert.ErrorIs(t, errors[0], errs.ErrUserNotInConversation)
	chatStore.AssertNotCalled(t, "MarkConversationMessagesSeen", mock.Anything, mock.Anything)
	chatStore.AssertNotCalled(t, "GetMessagesByConversationId", mock.Anything, mock.Anything, mock.Anything)
}
