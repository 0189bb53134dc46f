package repositories

import (
	"errors"
	"time"

	"weddingChat/internal/errs"
	"weddingChat/internal/models"
	"weddingChat/internal/utils"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

// FindConversation looks up the single conversation for the given participant
// pair and context key. The pair is matched in either assignment order so
// rows written before participant normalization still resolve.
func (chr *ChatRepository) FindConversation(userA, userB uint, contextKey string) (*models.Conversation, error) {
	var conversation models.Conversation
	result := chr.db.
		Where(
			"((user_one_id = ? AND user_two_id = ?) OR (user_one_id = ? AND user_two_id = ?)) AND context_key = ?",
			userA, userB, userB, userA, contextKey,
		).
		First(&conversation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &conversation, nil
}

// CreateConversation inserts the row. The composite unique index on
// (user_one_id, user_two_id, context_key) turns a creation race into a
// gorm.ErrDuplicatedKey, which the service recovers from by re-selecting.
func (chr *ChatRepository) CreateConversation(conversation *models.Conversation) error {
	return chr.db.Create(conversation).Error
}

func (chr *ChatRepository) GetConversationById(conversationID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	result := chr.db.
		Preload("UserOne").
		Preload("UserTwo").
		Where("id = ?", conversationID).
		First(&conversation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrConversationNotFound
		}
		return nil, result.Error
	}
	return &conversation, nil
}

// GetUserConversations returns every conversation the user participates in,
// newest activity first, each annotated with the other participant, the
// last-message preview and the unread count. A conversation with no messages
// keeps a nil preview.
func (chr *ChatRepository) GetUserConversations(userID uint, page, size int) (*models.ConversationListResponse, []error) {
	var errors []error
	var conversations []models.Conversation
	var total int64

	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Preload("UserOne").
			Preload("UserTwo").
			Where("user_one_id = ? OR user_two_id = ?", userID, userID).
			Order("updated_at DESC").
			Find(&conversations).Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.Conversation{}).
			Where("user_one_id = ? OR user_two_id = ?", userID, userID).
			Count(&total).Error; err != nil {
			return err
		}

		return nil
	})
	if transactionErr != nil {
		errors = append(errors, transactionErr)
		return nil, errors
	}

	conversationResponses := make([]models.ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		lastMessage, _ := chr.GetConversationLastMessage(conversation.ID)
		unread, err := chr.GetConversationUnReadMessagesForUser(conversation.ID, userID)
		if err != nil {
			errors = append(errors, err)
			return nil, errors
		}

		var otherUser *models.UserResponse
		if conversation.UserOne.ID == conversation.OtherParticipant(userID) {
			otherUser = conversation.UserOne.ToUserResponse()
		} else {
			otherUser = conversation.UserTwo.ToUserResponse()
		}

		conversationResponses = append(conversationResponses, conversation.ToConversationResponse(otherUser, lastMessage, unread))
	}

	return &models.ConversationListResponse{
		Conversations: conversationResponses,
		Page:          page,
		Size:          size,
		Total:         total,
	}, nil
}

func (chr *ChatRepository) SaveMessage(message *models.Message) (*models.Message, []error) {
	var errors []error
	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}
		return nil
	})
	if transactionErr != nil {
		errors = append(errors, transactionErr)
		return nil, errors
	}
	return message, nil
}

func (chr *ChatRepository) GetMessageById(messageID uint) (*models.Message, error) {
	var message models.Message
	result := chr.db.Where("id = ?", messageID).First(&message)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrMessageNotFound
		}
		return nil, result.Error
	}
	return &message, nil
}

func (chr *ChatRepository) GetConversationLastMessage(conversationID uint) (*models.Message, error) {
	var message models.Message
	if err := chr.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetMessagesByConversationId returns the conversation history oldest first;
// created_at is the authoritative ordering key, not client dispatch order.
func (chr *ChatRepository) GetMessagesByConversationId(conversationID uint, page, size int) (*models.MessageListResponse, []error) {
	var errors []error
	var messages []models.Message
	var total int64

	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Where("conversation_id = ?", conversationID).
			Order("created_at ASC").
			Find(&messages).Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.Message{}).
			Where("conversation_id = ?", conversationID).
			Count(&total).Error; err != nil {
			return err
		}

		return nil
	})
	if transactionErr != nil {
		errors = append(errors, transactionErr)
		return nil, errors
	}

	return &models.MessageListResponse{
		Messages: messages,
		Page:     page,
		Size:     size,
		Total:    total,
	}, nil
}

// MarkConversationMessagesSeen flips every unread message in the conversation
// that was authored by the other participant. The sender_id guard keeps a
// viewer from marking their own messages as seen.
func (chr *ChatRepository) MarkConversationMessagesSeen(conversationID, viewerID uint) (int64, error) {
	result := chr.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND seen_at IS NULL", conversationID, viewerID).
		Update("seen_at", time.Now())
	if err := result.Error; err != nil {
		return 0, err
	}
	return result.RowsAffected, nil
}

func (chr *ChatRepository) SeenMessage(messageIds []uint, seenerId uint) []error {
	var errors []error
	// Update if not seen yet and sender is not the seener to prevent message owner from marking it as seen
	result := chr.db.Model(&models.Message{}).
		Where("id IN ? AND seen_at IS NULL AND sender_id != ?", messageIds, seenerId).
		Update("seen_at", time.Now())
	if err := result.Error; err != nil {
		errors = append(errors, err)
		return errors
	}
	if result.RowsAffected == 0 {
		errors = append(errors, errs.NoneOfMessagesSeen)
		return errors
	}
	return nil
}

func (chr *ChatRepository) GetConversationUnReadMessagesForUser(conversationID, userID uint) (int, error) {
	var count int = 0
	result := chr.db.Raw(
		"SELECT COUNT(*) FROM messages WHERE conversation_id = ? AND sender_id <> ? AND seen_at IS NULL AND deleted_at IS NULL",
		conversationID,
		userID,
	).Scan(&count)

	if err := result.Error; err != nil {
		return 0, err
	}

	return count, nil
}

// GetTotalUnreadForUser counts unread messages authored by others across
// every conversation the user participates in. Feeds the unread badge.
func (chr *ChatRepository) GetTotalUnreadForUser(userID uint) (int64, error) {
	var count int64 = 0
	result := chr.db.Raw(
		`SELECT COUNT(*) FROM messages m
		 INNER JOIN conversations c ON c.id = m.conversation_id
		 WHERE (c.user_one_id = ? OR c.user_two_id = ?)
		   AND m.sender_id <> ?
		   AND m.seen_at IS NULL
		   AND m.deleted_at IS NULL`,
		userID, userID, userID,
	).Scan(&count)

	if err := result.Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (chr *ChatRepository) CheckConversationExists(conversationID uint) bool {
	var count int64
	chr.db.Model(&models.Conversation{}).Where("id = ?", conversationID).Count(&count)
	return count > 0
}

func (chr *ChatRepository) CheckUserInConversation(userID, conversationID uint) bool {
	var count int64
	chr.db.Model(&models.Conversation{}).
		Where("id = ? AND (user_one_id = ? OR user_two_id = ?)", conversationID, userID, userID).
		Count(&count)
	return count > 0
}
