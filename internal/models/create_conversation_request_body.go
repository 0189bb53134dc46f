package models

type CreateConversationRequestBody struct {
	OtherUserID uint  `json:"other_user_id"`
	ProviderID  *uint `json:"provider_id"`
	HallID      *uint `json:"hall_id"`
	DressID     *uint `json:"dress_id"`
}

func (body *CreateConversationRequestBody) ToConversationContext() ConversationContext {
	return ConversationContext{
		ProviderID: body.ProviderID,
		HallID:     body.HallID,
		DressID:    body.DressID,
	}
}
