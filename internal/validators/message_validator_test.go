package validators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weddingChat/internal/errs"
	"weddingChat/internal/models"
	"weddingChat/internal/validators"
)

func TestValidateMessageRejectsEmptyContent(t *testing.T) {
	message := &models.Message{
		ConversationID: 1,
		SenderID:       2,
		Content:        "",
	}

	validationErrs := validators.ValidateMessage(message)
	assert.Len(t, validationErrs, 1)
	assert.ErrorIs(t, validationErrs[0], errs.ErrEmptyMessage)
}

func TestValidateMessageAcceptsImageOnly(t *testing.T) {
	message := &models.Message{
		ConversationID: 1,
		SenderID:       2,
		Images:         models.ImageList{"http://storage/2/a.jpg"},
	}

	assert.Empty(t, validators.ValidateMessage(message))
}

func TestValidateMessageAcceptsTextOnly(t *testing.T) {
	message := &models.Message{
		ConversationID: 1,
		SenderID:       2,
		Content:        "hello",
	}

	assert.Empty(t, validators.ValidateMessage(message))
}

func TestValidateMessageRejectsTooManyAttachments(t *testing.T) {
	message := &models.Message{
		ConversationID: 1,
		SenderID:       2,
		Content:        "look at these",
		Images:         models.ImageList{"a", "b", "c", "d", "e"},
	}

	validationErrs := validators.ValidateMessage(message)
	assert.Len(t, validationErrs, 1)
	assert.ErrorIs(t, validationErrs[0], errs.ErrTooManyAttachments)
}

func TestIsSupportedImageType(t *testing.T) {
	assert.True(t, validators.IsSupportedImageType("image/jpeg"))
	assert.True(t, validators.IsSupportedImageType("image/PNG"))
	assert.False(t, validators.IsSupportedImageType("application/pdf"))
	assert.False(t, validators.IsSupportedImageType(""))
}
