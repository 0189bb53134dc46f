package validators

import (
	"strings"

	"weddingChat/internal/errs"
	"weddingChat/internal/models"
)

// MaxMessageAttachments bounds the number of images a single message may
// carry. Enforced before any upload or store call.
const MaxMessageAttachments = 4

func ValidateMessage(message *models.Message) []error {
	var errors []error
	if message == nil {
		errors = append(errors, errs.ErrInvalidRequest)
		return errors
	}

	if !message.HasContent() {
		errors = append(errors, errs.ErrEmptyMessage)
	}

	if len(message.Images) > MaxMessageAttachments {
		errors = append(errors, errs.ErrTooManyAttachments)
	}

	return errors
}

func IsSupportedImageType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}
