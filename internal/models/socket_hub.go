package models

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type SocketClient struct {
	Conn   *websocket.Conn
	UserId uint
}

// SocketUnreadHub tracks the per-user sockets that receive unread badge
// pushes. [user_id] => []*SocketClient
type SocketUnreadHub struct {
	Clients map[uint][]*SocketClient
	Mu      sync.Mutex
	Redis   *redis.Client
}
