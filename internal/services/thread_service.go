package services

import (
	"sync"

	"weddingChat/internal/models"
)

// ThreadState tracks the lifecycle of one open message thread.
type ThreadState int

const (
	ThreadClosed ThreadState = iota
	ThreadOpening
	ThreadSubscribed
)

// MergeIncoming applies the realtime reconciliation rule to an insert event:
// an event authored by the local user is discarded, because the send call's
// own return value already appended it; any other event is appended exactly
// once, keyed by message id. The list is already ordered by created_at and
// is never re-sorted here.
func MergeIncoming(local []models.Message, incoming models.Message, localUserID uint) ([]models.Message, bool) {
	if incoming.SenderID == localUserID {
		return local, false
	}
	for _, message := range local {
		if message.ID == incoming.ID {
			return local, false
		}
	}
	return append(local, incoming), true
}

// ThreadSession mirrors the message state of a single open thread for one
// participant. Exactly one session exists per open thread; switching
// conversations closes the old session before a new one opens.
type ThreadSession struct {
	mu             sync.Mutex
	state          ThreadState
	conversationID uint
	userID         uint
	messages       []models.Message
}

func NewThreadSession(conversationID, userID uint) *ThreadSession {
	return &ThreadSession{
		state:          ThreadOpening,
		conversationID: conversationID,
		userID:         userID,
	}
}

// Seed installs the fetched history and moves the session to subscribed.
// Seeding a closed session is a no-op.
func (ts *ThreadSession) Seed(messages []models.Message) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.state != ThreadOpening {
		return
	}
	ts.messages = append(ts.messages[:0], messages...)
	ts.state = ThreadSubscribed
}

// Merge reconciles one realtime insert event into the session. Returns true
// when the event was appended and therefore must be delivered and marked
// seen; false when it was a self-echo, a duplicate, or arrived while the
// session was not subscribed.
func (ts *ThreadSession) Merge(incoming *models.Message) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.state != ThreadSubscribed {
		return false
	}
	if incoming.ConversationID != ts.conversationID {
		return false
	}
	merged, appended := MergeIncoming(ts.messages, *incoming, ts.userID)
	ts.messages = merged
	return appended
}

func (ts *ThreadSession) Close() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.state = ThreadClosed
	ts.messages = nil
}

func (ts *ThreadSession) State() ThreadState {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.state
}

func (ts *ThreadSession) ConversationID() uint {
	return ts.conversationID
}

func (ts *ThreadSession) UserID() uint {
	return ts.userID
}

func (ts *ThreadSession) Messages() []models.Message {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]models.Message, len(ts.messages))
	copy(out, ts.messages)
	return out
}
