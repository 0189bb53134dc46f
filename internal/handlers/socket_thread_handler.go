package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"weddingChat/internal/enums"
	"weddingChat/internal/errs"
	"weddingChat/internal/models"
	redisModels "weddingChat/internal/models/redis"
	socketModels "weddingChat/internal/models/socket"
	"weddingChat/internal/msgs"
	"weddingChat/internal/services"
	"weddingChat/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const threadHistoryPageSize = 100

// threadClient pairs one websocket connection with the thread session that
// reconciles realtime events for it.
type threadClient struct {
	client  *models.SocketClient
	session *services.ThreadSession
}

// SocketThreadHandler owns the per-conversation realtime channel. Each open
// thread holds exactly one registration here; events are published to redis
// and fanned back in to every registered session of that conversation.
type SocketThreadHandler struct {
	mu            sync.Mutex
	ctx           context.Context
	redis         *redis.Client
	upgrader      websocket.Upgrader
	conversations map[uint][]*threadClient
	chatService   *services.ChatService
}

func NewSocketThreadHandler(redis *redis.Client, ctx context.Context, chatService *services.ChatService) *SocketThreadHandler {
	return &SocketThreadHandler{
		ctx:           ctx,
		redis:         redis,
		chatService:   chatService,
		conversations: make(map[uint][]*threadClient),
	}
}

func (sth *SocketThreadHandler) StartSocket() {
	sth.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	go sth.HandleRedisMessages()
}

func (sth *SocketThreadHandler) HandleSocketThreadRoute(ctx *gin.Context) {
	// Authenticate user
	jwtToken := ctx.Request.Header.Get("Authorization")
	if jwtToken == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	userInfo, err := utils.VerifyToken(jwtToken, utils.GetJwtKey())
	if err != nil || userInfo.ID == 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	// Get conversation ID and validate it
	conversationId := ctx.Query("conversationId")
	conversationIdInt, err := strconv.Atoi(conversationId)
	if err != nil || conversationIdInt == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidConversationId},
		})
		return
	}
	conversationIdUInt := uint(conversationIdInt)
	if !sth.chatService.CheckConversationExists(conversationIdUInt) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidConversationId},
		})
		return
	}
	if !sth.chatService.CheckUserInConversation(userInfo.ID, conversationIdUInt) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUserNotInConversation},
		})
		return
	}

	sth.HandleConnections(ctx, userInfo, conversationIdUInt)
}

func (sth *SocketThreadHandler) HandleConnections(ctx *gin.Context, userInfo *models.Claims, conversationId uint) {
	ws, err := sth.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			log.Printf("Error closing connection: %v", err)
		}
	}(ws)

	// Opening: fetch history before the session accepts realtime events.
	// The fetch marks the counterpart's unread messages seen because the
	// thread is now actively being viewed.
	session := services.NewThreadSession(conversationId, userInfo.ID)
	history, historyErrs := sth.chatService.GetConversationMessages(conversationId, userInfo.ID, 1, threadHistoryPageSize)
	if len(historyErrs) > 0 {
		log.Printf("Error fetching history for conversation %v: %v", conversationId, historyErrs)
		return
	}
	session.Seed(history.Messages)

	tc := &threadClient{
		client: &models.SocketClient{
			Conn:   ws,
			UserId: userInfo.ID,
		},
		session: session,
	}
	sth.addClientToConversation(conversationId, tc)
	defer sth.removeClientFromConversation(conversationId, tc)
	defer session.Close()

	// Deliver the seeded history as the first frame
	if err := ws.WriteJSON(redisModels.RedisPublishedMessage{
		Event:          enums.SOCKET_EVENT_NOTIFY,
		ConversationID: conversationId,
		Payload:        history,
	}); err != nil {
		log.Printf("Error writing history frame: %v", err)
		return
	}

	sth.handleIncomingEvents(ws, userInfo, conversationId)
}

func (sth *SocketThreadHandler) addClientToConversation(conversationId uint, tc *threadClient) {
	sth.mu.Lock()
	defer sth.mu.Unlock()
	sth.conversations[conversationId] = append(sth.conversations[conversationId], tc)
}

func (sth *SocketThreadHandler) removeClientFromConversation(conversationId uint, tc *threadClient) {
	sth.mu.Lock()
	defer sth.mu.Unlock()
	clients := sth.conversations[conversationId]
	for i, client := range clients {
		if client == tc {
			sth.conversations[conversationId] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(sth.conversations[conversationId]) == 0 {
		delete(sth.conversations, conversationId)
	}
}

func (sth *SocketThreadHandler) handleIncomingEvents(ws *websocket.Conn, userInfo *models.Claims, conversationId uint) {
	for {
		var event socketModels.SocketEvent
		err := ws.ReadJSON(&event)
		if err != nil {
			log.Printf("Error reading json: %v", err)
			break
		}

		event.ConversationID = conversationId

		switch event.Event {
		case enums.SOCKET_EVENT_SEND_MESSAGE:
			errs := sth.handleSendMessageEvent(ws, event.Payload, userInfo, conversationId)
			if len(errs) > 0 {
				log.Printf("handleIncomingEvents - Error while handling send message event: %v", errs)
			}
		case enums.SOCKET_EVENT_SEEN_MESSAGE:
			errs := sth.handleSeenMessageEvent(event.Payload, conversationId, userInfo.ID)
			if len(errs) > 0 {
				log.Printf("handleIncomingEvents - Error while handling seen message event: %v", errs)
			}
		case enums.SOCKET_EVENT_IS_TYPING:
			errs := sth.handleIsTypingEvent(event.Payload, conversationId)
			if len(errs) > 0 {
				log.Printf("handleIncomingEvents - Error while handling is typing event: %v", errs)
			}
		default:
			log.Printf("Unknown event: %v", event)
		}
	}
}

// handleSendMessageEvent persists the message, acknowledges the sender with
// the stored row (the sender's local append uses this ack, not the redis
// echo), then publishes the insert for fan-in.
func (sth *SocketThreadHandler) handleSendMessageEvent(ws *websocket.Conn, payload json.RawMessage, userInfo *models.Claims, conversationId uint) []error {
	var errors []error
	var messageRequest models.MessageRequest
	err := json.Unmarshal(payload, &messageRequest)
	if err != nil {
		errors = append(errors, errs.ErrInvalidRequest)
		return errors
	}

	message := &models.Message{
		ConversationID: conversationId,
		Content:        messageRequest.Content,
		Images:         messageRequest.Images,
		SenderID:       userInfo.ID,
	}
	savedMessage, saveMsgErrs := sth.chatService.SendMessage(message)
	if len(saveMsgErrs) > 0 {
		errors = append(errors, saveMsgErrs...)
		return errors
	}

	if err := ws.WriteJSON(redisModels.RedisPublishedMessage{
		Event:          enums.SOCKET_EVENT_NOTIFY,
		ConversationID: conversationId,
		Payload:        savedMessage,
	}); err != nil {
		errors = append(errors, err)
		return errors
	}

	redisEvent := redisModels.RedisPublishedMessage{
		Event:          enums.SOCKET_EVENT_SEND_MESSAGE,
		ConversationID: conversationId,
		Payload:        savedMessage,
	}
	jsonEvent, err := json.Marshal(redisEvent)
	if err != nil {
		errors = append(errors, err)
		return errors
	}
	if err := sth.PublishMessage(redisModels.REDIS_CHANNEL_CHAT, jsonEvent); err != nil {
		errors = append(errors, err)
		return errors
	}
	return nil
}

func (sth *SocketThreadHandler) handleSeenMessageEvent(payload json.RawMessage, conversationId, seenerId uint) []error {
	var errors []error
	var seenData socketModels.SeenMessagePayload
	err := json.Unmarshal(payload, &seenData)
	if err != nil {
		errors = append(errors, err)
		return errors
	}
	seenData.SeenerId = seenerId

	seenErrs := sth.chatService.SeenMessages(seenData.MessageIds, seenerId)
	if len(seenErrs) > 0 {
		errors = append(errors, seenErrs...)
		return errors
	}

	redisEvent := redisModels.RedisPublishedMessage{
		Event:          enums.SOCKET_EVENT_SEEN_MESSAGE,
		ConversationID: conversationId,
		Payload:        seenData,
	}
	jsonEvent, err := json.Marshal(redisEvent)
	if err != nil {
		errors = append(errors, err)
		return errors
	}
	if err := sth.PublishMessage(redisModels.REDIS_CHANNEL_CHAT, jsonEvent); err != nil {
		errors = append(errors, err)
		return errors
	}
	return nil
}

func (sth *SocketThreadHandler) handleIsTypingEvent(payload json.RawMessage, conversationId uint) []error {
	var errors []error
	var isTypingPayload socketModels.IsTypingPayload
	err := json.Unmarshal(payload, &isTypingPayload)
	if err != nil {
		errors = append(errors, errs.ErrInvalidRequest)
		return errors
	}

	redisEvent := redisModels.RedisPublishedMessage{
		Event:          enums.SOCKET_EVENT_IS_TYPING,
		ConversationID: conversationId,
		Payload:        isTypingPayload,
	}
	jsonEvent, err := json.Marshal(redisEvent)
	if err != nil {
		errors = append(errors, err)
		return errors
	}
	if err := sth.PublishMessage(redisModels.REDIS_CHANNEL_CHAT, jsonEvent); err != nil {
		errors = append(errors, err)
		return errors
	}
	return nil
}

func (sth *SocketThreadHandler) HandleRedisMessages() {
	ch := sth.SubscribeToChannel(redisModels.REDIS_CHANNEL_CHAT)
	for msg := range ch {
		var redisMessage redisModels.RedisPublishedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &redisMessage); err != nil {
			log.Printf("Error unmarshalling message: %v", err)
			continue
		}

		switch redisMessage.Event {
		case enums.SOCKET_EVENT_SEND_MESSAGE:
			sth.fanInMessage(redisMessage)
		default:
			sth.broadcastToConversation(redisMessage)
		}
	}
}

// fanInMessage reconciles one insert notification into every open session of
// the conversation. The merge discards the sender's own echo and drops
// duplicate ids; each freshly appended message is marked seen immediately
// because the receiving participant has the thread open.
func (sth *SocketThreadHandler) fanInMessage(redisMessage redisModels.RedisPublishedMessage) {
	incoming, err := sth.decodeMessagePayload(redisMessage.Payload)
	if err != nil {
		log.Printf("Error decoding message payload: %v", err)
		return
	}

	// Re-fetch the stored row so the delivered frame carries everything the
	// insert notification may have elided.
	message, err := sth.chatService.GetMessageById(incoming.ID)
	if err != nil {
		log.Printf("Error re-fetching message %v: %v", incoming.ID, err)
		return
	}

	sth.mu.Lock()
	clients := append([]*threadClient{}, sth.conversations[redisMessage.ConversationID]...)
	sth.mu.Unlock()

	for _, tc := range clients {
		if !tc.session.Merge(message) {
			continue
		}
		if err := tc.client.Conn.WriteJSON(redisMessage); err != nil {
			log.Printf("Error writing json: %v", err)
			tc.client.Conn.Close()
			sth.removeClientFromConversation(redisMessage.ConversationID, tc)
			continue
		}
		if seenErrs := sth.chatService.SeenMessages([]uint{message.ID}, tc.client.UserId); len(seenErrs) > 0 {
			log.Printf("Error marking message %v seen for user %v: %v", message.ID, tc.client.UserId, seenErrs)
		}
	}
}

func (sth *SocketThreadHandler) broadcastToConversation(redisMessage redisModels.RedisPublishedMessage) {
	sth.mu.Lock()
	defer sth.mu.Unlock()
	for _, tc := range sth.conversations[redisMessage.ConversationID] {
		if err := tc.client.Conn.WriteJSON(redisMessage); err != nil {
			log.Printf("Error writing json: %v", err)
		}
	}
}

func (sth *SocketThreadHandler) decodeMessagePayload(payload any) (*models.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var message models.Message
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (sth *SocketThreadHandler) PublishMessage(channel string, message []byte) error {
	return sth.redis.Publish(sth.ctx, channel, message).Err()
}

func (sth *SocketThreadHandler) SubscribeToChannel(channel string) <-chan *redis.Message {
	pubsub := sth.redis.Subscribe(sth.ctx, channel)
	_, err := pubsub.Receive(sth.ctx)
	if err != nil {
		log.Fatalf("Could not subscribe to channel: %v", err)
	}
	return pubsub.Channel()
}
