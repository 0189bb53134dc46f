package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	socketModels "weddingChat/internal/models/socket"
	"weddingChat/internal/services"
)

type MockUnreadStore struct {
	mock.Mock
}

func (m *MockUnreadStore) GetTotalUnreadForUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestUnreadPollerTickPublishesForWatchedUsers(t *testing.T) {
	store := new(MockUnreadStore)
	store.On("GetTotalUnreadForUser", uint(4)).Return(int64(3), nil)

	var published []socketModels.UnreadCountPayload
	poller := services.NewUnreadPoller(store, time.Second, func(payload socketModels.UnreadCountPayload) {
		published = append(published, payload)
	})

	poller.Watch(4)
	poller.Tick()

	assert.Len(t, published, 1)
	assert.Equal(t, uint(4), published[0].UserId)
	assert.Equal(t, int64(3), published[0].Unread)
}

func TestUnreadPollerIgnoresUnwatchedUsers(t *testing.T) {
	store := new(MockUnreadStore)

	var published []socketModels.UnreadCountPayload
	poller := services.NewUnreadPoller(store, time.Second, func(payload socketModels.UnreadCountPayload) {
		published = append(published, payload)
	})

	poller.Watch(4)
	poller.Unwatch(4)
	poller.Tick()

	assert.Empty(t, published)
	store.AssertNotCalled(t, "GetTotalUnreadForUser", mock.Anything)
}

func TestUnreadPollerSkipsFailedUsers(t *testing.T) {
	store := new(MockUnreadStore)
	store.On("GetTotalUnreadForUser", uint(4)).Return(int64(0), errors.New("connection reset"))
	store.On("GetTotalUnreadForUser", uint(5)).Return(int64(1), nil)

	var published []socketModels.UnreadCountPayload
	poller := services.NewUnreadPoller(store, time.Second, func(payload socketModels.UnreadCountPayload) {
		published = append(published, payload)
	})

	poller.Watch(4)
	poller.Watch(5)
	poller.Tick()

	assert.Len(t, published, 1)
	assert.Equal(t, uint(5), published[0].UserId)
}
