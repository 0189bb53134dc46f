package services

import (
	"context"
	"log"
	"sync"
	"time"

	socketModels "weddingChat/internal/models/socket"
)

// UnreadStore is the slice of ChatStore the poller needs.
type UnreadStore interface {
	GetTotalUnreadForUser(userID uint) (int64, error)
}

// UnreadPoller periodically recomputes the unread badge for every watched
// user and hands the result to the publish callback. The badge is pull-based
// on purpose: an interval bound keeps the aggregate query load flat no
// matter how chatty the conversations get.
type UnreadPoller struct {
	mu       sync.Mutex
	store    UnreadStore
	publish  func(payload socketModels.UnreadCountPayload)
	interval time.Duration
	watched  map[uint]struct{}
}

func NewUnreadPoller(store UnreadStore, interval time.Duration, publish func(payload socketModels.UnreadCountPayload)) *UnreadPoller {
	return &UnreadPoller{
		store:    store,
		publish:  publish,
		interval: interval,
		watched:  make(map[uint]struct{}),
	}
}

func (up *UnreadPoller) Watch(userID uint) {
	up.mu.Lock()
	defer up.mu.Unlock()
	up.watched[userID] = struct{}{}
}

func (up *UnreadPoller) Unwatch(userID uint) {
	up.mu.Lock()
	defer up.mu.Unlock()
	delete(up.watched, userID)
}

func (up *UnreadPoller) Start(ctx context.Context) {
	ticker := time.NewTicker(up.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			up.Tick()
		}
	}
}

// Tick publishes the current unread count for every watched user.
func (up *UnreadPoller) Tick() {
	up.mu.Lock()
	userIDs := make([]uint, 0, len(up.watched))
	for userID := range up.watched {
		userIDs = append(userIDs, userID)
	}
	up.mu.Unlock()

	for _, userID := range userIDs {
		unread, err := up.store.GetTotalUnreadForUser(userID)
		if err != nil {
			log.Printf("Error computing unread count for user %v: %v", userID, err)
			continue
		}
		up.publish(socketModels.UnreadCountPayload{
			UserId: userID,
			Unread: unread,
		})
	}
}
