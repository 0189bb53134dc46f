package models

import "fmt"

// ConversationContext is the optional listing a conversation was started
// from. At most one of the three references may be set; a zero value means
// the conversation is context-free.
type ConversationContext struct {
	ProviderID *uint `json:"provider_id"`
	HallID     *uint `json:"hall_id"`
	DressID    *uint `json:"dress_id"`
}

func (cc ConversationContext) IsEmpty() bool {
	return cc.ProviderID == nil && cc.HallID == nil && cc.DressID == nil
}

func (cc ConversationContext) IsValid() bool {
	count := 0
	if cc.ProviderID != nil {
		count++
	}
	if cc.HallID != nil {
		count++
	}
	if cc.DressID != nil {
		count++
	}
	return count <= 1
}

// Key collapses the context into a single comparable column value so that
// the conversation uniqueness index can cover it. Context-free conversations
// share the "none" key and stay distinct from any listing-scoped one.
func (cc ConversationContext) Key() string {
	switch {
	case cc.ProviderID != nil:
		return fmt.Sprintf("provider:%d", *cc.ProviderID)
	case cc.HallID != nil:
		return fmt.Sprintf("hall:%d", *cc.HallID)
	case cc.DressID != nil:
		return fmt.Sprintf("dress:%d", *cc.DressID)
	default:
		return "none"
	}
}
