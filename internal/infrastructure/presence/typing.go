package presence

import (
	"sort"
	"sync"
)

// TypingTracker holds the ephemeral per-order set of users currently
// composing a message. Nothing here is persisted; state lives only for the
// duration of an open chat view.
type TypingTracker struct {
	mu     sync.RWMutex
	typing map[string]map[string]struct{} // orderID -> set of userIDs
}

func NewTypingTracker() *TypingTracker {
	return &TypingTracker{
		typing: make(map[string]map[string]struct{}),
	}
}

func (t *TypingTracker) Set(orderID, userID string, isTyping bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	users, ok := t.typing[orderID]
	if !ok {
		if !isTyping {
			return
		}
		users = make(map[string]struct{})
		t.typing[orderID] = users
	}

	if isTyping {
		users[userID] = struct{}{}
		return
	}

	delete(users, userID)
	if len(users) == 0 {
		delete(t.typing, orderID)
	}
}

// List returns the ids currently typing in the order, sorted for stable
// output.
func (t *TypingTracker) List(orderID string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users := t.typing[orderID]
	if len(users) == 0 {
		return nil
	}

	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
