package models

const (
	REDIS_CHANNEL_CHAT          = "chat_events"
	REDIS_CHANNEL_NOTIFICATIONS = "notification_events"
)

type RedisPublishedMessage struct {
	Event          string `json:"event"`
	ConversationID uint   `json:"conversation_id"`
	Payload        any    `json:"payload"`
}
