package services

import (
	"errors"
	"log"

	"weddingChat/internal/errs"
	"weddingChat/internal/models"
	"weddingChat/internal/validators"

	"gorm.io/gorm"
)

// ChatStore is the persistence surface the chat service runs on, implemented
// by repositories.ChatRepository.
type ChatStore interface {
	FindConversation(userA, userB uint, contextKey string) (*models.Conversation, error)
	CreateConversation(conversation *models.Conversation) error
	GetConversationById(conversationID uint) (*models.Conversation, error)
	GetUserConversations(userID uint, page, size int) (*models.ConversationListResponse, []error)
	SaveMessage(message *models.Message) (*models.Message, []error)
	GetMessageById(messageID uint) (*models.Message, error)
	GetMessagesByConversationId(conversationID uint, page, size int) (*models.MessageListResponse, []error)
	MarkConversationMessagesSeen(conversationID, viewerID uint) (int64, error)
	SeenMessage(messageIds []uint, seenerId uint) []error
	GetConversationUnReadMessagesForUser(conversationID, userID uint) (int, error)
	GetTotalUnreadForUser(userID uint) (int64, error)
	CheckConversationExists(conversationID uint) bool
	CheckUserInConversation(userID, conversationID uint) bool
}

// ListingStore answers whether a listing referenced by a conversation
// context actually exists, implemented by repositories.ListingRepository.
type ListingStore interface {
	CheckProviderExists(providerID uint) bool
	CheckHallExists(hallID uint) bool
	CheckDressExists(dressID uint) bool
}

type ChatService struct {
	chatStore    ChatStore
	listingStore ListingStore
}

func NewChatService(chatStore ChatStore, listingStore ListingStore) *ChatService {
	return &ChatService{
		chatStore:    chatStore,
		listingStore: listingStore,
	}
}

// GetOrCreateConversation resolves the canonical conversation for the given
// participant pair and context, creating it on first message intent. Two
// racing creators both reach the insert; the loser hits the uniqueness
// constraint and re-selects the winner's row, so the race never surfaces.
func (cs *ChatService) GetOrCreateConversation(currentUserID, otherUserID uint, context models.ConversationContext) (*models.Conversation, []error) {
	var errors []error

	if currentUserID == otherUserID {
		errors = append(errors, errs.ErrConversationWithSelf)
		return nil, errors
	}
	if !context.IsValid() {
		errors = append(errors, errs.ErrAmbiguousContext)
		return nil, errors
	}
	if listingErr := cs.checkContextListing(context); listingErr != nil {
		errors = append(errors, listingErr)
		return nil, errors
	}

	conversation := models.NewConversation(currentUserID, otherUserID, context)

	existing, err := cs.chatStore.FindConversation(currentUserID, otherUserID, context.Key())
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	if existing != nil {
		return existing, nil
	}

	if err := cs.chatStore.CreateConversation(conversation); err != nil {
		if cs.isDuplicateConversation(err) {
			return cs.reselectConversation(currentUserID, otherUserID, context.Key())
		}
		errors = append(errors, err)
		return nil, errors
	}

	return conversation, nil
}

func (cs *ChatService) checkContextListing(context models.ConversationContext) error {
	switch {
	case context.ProviderID != nil:
		if !cs.listingStore.CheckProviderExists(*context.ProviderID) {
			return errs.ErrListingNotFound
		}
	case context.HallID != nil:
		if !cs.listingStore.CheckHallExists(*context.HallID) {
			return errs.ErrListingNotFound
		}
	case context.DressID != nil:
		if !cs.listingStore.CheckDressExists(*context.DressID) {
			return errs.ErrListingNotFound
		}
	}
	return nil
}

func (cs *ChatService) isDuplicateConversation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (cs *ChatService) reselectConversation(currentUserID, otherUserID uint, contextKey string) (*models.Conversation, []error) {
	var errors []error
	existing, err := cs.chatStore.FindConversation(currentUserID, otherUserID, contextKey)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	if existing == nil {
		errors = append(errors, errs.ErrConversationNotFound)
		return nil, errors
	}
	log.Printf("Conversation creation raced, reusing conversation %d", existing.ID)
	return existing, nil
}

func (cs *ChatService) GetUserConversations(userID uint, page, size int) (*models.ConversationListResponse, []error) {
	return cs.chatStore.GetUserConversations(userID, page, size)
}

// SendMessage validates and persists a message. Validation happens before
// any store call; the caller appends the returned row to its local state
// only after the persist succeeds.
func (cs *ChatService) SendMessage(message *models.Message) (*models.Message, []error) {
	var errors []error

	if validationErrs := validators.ValidateMessage(message); len(validationErrs) > 0 {
		return nil, validationErrs
	}
	if !cs.chatStore.CheckConversationExists(message.ConversationID) {
		errors = append(errors, errs.ErrConversationNotFound)
		return nil, errors
	}
	if !cs.chatStore.CheckUserInConversation(message.SenderID, message.ConversationID) {
		errors = append(errors, errs.ErrUserNotInConversation)
		return nil, errors
	}

	return cs.chatStore.SaveMessage(message)
}

// GetConversationMessages returns the conversation history oldest first. As
// a side effect, every unread message authored by the other participant is
// marked seen for the viewing participant; the viewer's own messages are
// never touched.
func (cs *ChatService) GetConversationMessages(conversationID, viewerID uint, page, size int) (*models.MessageListResponse, []error) {
	var errors []error

	if !cs.chatStore.CheckUserInConversation(viewerID, conversationID) {
		errors = append(errors, errs.ErrUserNotInConversation)
		return nil, errors
	}

	if _, err := cs.chatStore.MarkConversationMessagesSeen(conversationID, viewerID); err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	return cs.chatStore.GetMessagesByConversationId(conversationID, page, size)
}

func (cs *ChatService) SeenMessages(messageIds []uint, seenerId uint) []error {
	return cs.chatStore.SeenMessage(messageIds, seenerId)
}

func (cs *ChatService) GetMessageById(messageID uint) (*models.Message, error) {
	return cs.chatStore.GetMessageById(messageID)
}

func (cs *ChatService) GetConversationById(conversationID uint) (*models.Conversation, error) {
	return cs.chatStore.GetConversationById(conversationID)
}

func (cs *ChatService) GetUnreadCountForUser(userID uint) (int64, error) {
	return cs.chatStore.GetTotalUnreadForUser(userID)
}

func (cs *ChatService) CheckConversationExists(conversationID uint) bool {
	return cs.chatStore.CheckConversationExists(conversationID)
}

func (cs *ChatService) CheckUserInConversation(userID, conversationID uint) bool {
	return cs.chatStore.CheckUserInConversation(userID, conversationID)
}
