package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
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

// SocketUnreadHandler pushes the unread badge to each signed-in user over a
// per-user socket. Counts are recomputed on an interval by the poller, not
// per message, to bound aggregate query load.
type SocketUnreadHandler struct {
	mu          sync.Mutex
	ctx         context.Context
	upgrader    websocket.Upgrader
	hub         *models.SocketUnreadHub
	authService *services.AuthenticationService
	chatService *services.ChatService
	poller      *services.UnreadPoller
}

func NewSocketUnreadHandler(
	redis *redis.Client,
	ctx context.Context,
	authService *services.AuthenticationService,
	chatService *services.ChatService,
) *SocketUnreadHandler {
	suh := &SocketUnreadHandler{
		ctx:         ctx,
		authService: authService,
		chatService: chatService,
		hub: &models.SocketUnreadHub{
			Clients: make(map[uint][]*models.SocketClient),
			Mu:      sync.Mutex{},
			Redis:   redis,
		},
	}
	suh.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	go suh.handleRedisMessages()
	return suh
}

func (suh *SocketUnreadHandler) SetPoller(poller *services.UnreadPoller) {
	suh.poller = poller
}

// PublishUnreadCount is the poller's publish callback; the count travels
// through redis so every instance can deliver it to its own sockets.
func (suh *SocketUnreadHandler) PublishUnreadCount(payload socketModels.UnreadCountPayload) {
	redisEvent := redisModels.RedisPublishedMessage{
		Event:   enums.SOCKET_EVENT_UNREAD_COUNT,
		Payload: payload,
	}
	jsonEvent, err := json.Marshal(redisEvent)
	if err != nil {
		log.Printf("Error marshalling unread count event: %v", err)
		return
	}
	if err := suh.hub.Redis.Publish(suh.ctx, redisModels.REDIS_CHANNEL_NOTIFICATIONS, jsonEvent).Err(); err != nil {
		log.Printf("Error publishing unread count event: %v", err)
	}
}

func (suh *SocketUnreadHandler) HandleSocketUnreadRoute(ctx *gin.Context) {
	userInfo, err := suh.authorize(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ws, err := suh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
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

	client := &models.SocketClient{
		Conn:   ws,
		UserId: userInfo.ID,
	}
	suh.register(client)
	defer suh.unregister(client)

	suh.authService.SetOnlineStatus(userInfo.ID, true)
	defer suh.authService.SetOnlineStatus(userInfo.ID, false)

	if suh.poller != nil {
		suh.poller.Watch(userInfo.ID)
		defer suh.poller.Unwatch(userInfo.ID)
	}

	// Push the badge once on mount, then the poller takes over
	suh.pushUnreadCount(client)

	suh.keepSocketAlive(ws, userInfo.ID)
}

func (suh *SocketUnreadHandler) authorize(ctx *gin.Context) (*models.Claims, error) {
	jwtToken := ctx.Request.Header.Get("Authorization")
	if jwtToken == "" {
		return nil, errs.ErrUnauthorized
	}
	userInfo, err := utils.VerifyToken(jwtToken, utils.GetJwtKey())
	if err != nil {
		return nil, err
	}
	return userInfo, nil
}

func (suh *SocketUnreadHandler) register(client *models.SocketClient) {
	suh.hub.Mu.Lock()
	defer suh.hub.Mu.Unlock()
	suh.hub.Clients[client.UserId] = append(suh.hub.Clients[client.UserId], client)
}

func (suh *SocketUnreadHandler) unregister(client *models.SocketClient) {
	suh.hub.Mu.Lock()
	defer suh.hub.Mu.Unlock()
	clients := suh.hub.Clients[client.UserId]
	for i, c := range clients {
		if c == client {
			suh.hub.Clients[client.UserId] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(suh.hub.Clients[client.UserId]) == 0 {
		delete(suh.hub.Clients, client.UserId)
	}
}

func (suh *SocketUnreadHandler) pushUnreadCount(client *models.SocketClient) {
	unread, err := suh.chatService.GetUnreadCountForUser(client.UserId)
	if err != nil {
		log.Printf("Error computing unread count for user %v: %v", client.UserId, err)
		return
	}
	event := redisModels.RedisPublishedMessage{
		Event: enums.SOCKET_EVENT_UNREAD_COUNT,
		Payload: socketModels.UnreadCountPayload{
			UserId: client.UserId,
			Unread: unread,
		},
	}
	if err := client.Conn.WriteJSON(event); err != nil {
		log.Printf("Error writing unread count: %v", err)
	}
}

func (suh *SocketUnreadHandler) keepSocketAlive(ws *websocket.Conn, userId uint) {
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure, websocket.CloseGoingAway) {
				break
			}
			log.Printf("Error reading from user %v: %v", userId, err)
			break
		}
	}
}

func (suh *SocketUnreadHandler) handleRedisMessages() {
	pubsub := suh.hub.Redis.Subscribe(suh.ctx, redisModels.REDIS_CHANNEL_NOTIFICATIONS)
	if _, err := pubsub.Receive(suh.ctx); err != nil {
		log.Fatalf("Could not subscribe to channel: %v", err)
	}
	for msg := range pubsub.Channel() {
		var redisMessage redisModels.RedisPublishedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &redisMessage); err != nil {
			log.Printf("Error unmarshalling message: %v", err)
			continue
		}
		if redisMessage.Event != enums.SOCKET_EVENT_UNREAD_COUNT {
			continue
		}

		payloadBytes, err := json.Marshal(redisMessage.Payload)
		if err != nil {
			continue
		}
		var payload socketModels.UnreadCountPayload
		if err := json.Unmarshal(payloadBytes, &payload); err != nil {
			continue
		}

		suh.hub.Mu.Lock()
		clients := append([]*models.SocketClient{}, suh.hub.Clients[payload.UserId]...)
		suh.hub.Mu.Unlock()

		for _, client := range clients {
			if err := client.Conn.WriteJSON(redisMessage); err != nil {
				log.Printf("Error writing json: %v", err)
			}
		}
	}
}
