package models

type SeenMessagePayload struct {
	MessageIds []uint `json:"message_ids"`
	SeenerId   uint   `json:"seener_id"`
}

type IsTypingPayload struct {
	UserId   uint `json:"user_id"`
	IsTyping bool `json:"is_typing"`
}

type UnreadCountPayload struct {
	UserId uint  `json:"user_id"`
	Unread int64 `json:"unread"`
}
