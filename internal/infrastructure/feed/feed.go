package feed

import (
	"sync"

	"homefood/internal/domain/entity"
)

// Handler receives the full ordered message list for an order whenever it
// changes.
type Handler func(messages []*entity.Message)

// Subscription is a live message feed for one order. Cancel releases the
// subscription; after Cancel returns, the handler is never invoked again.
type Subscription struct {
	orderID string
	hub     *Hub

	mu       sync.Mutex
	handler  Handler
	canceled bool
}

func (s *Subscription) deliver(messages []*entity.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canceled {
		return
	}
	s.handler(messages)
}

func (s *Subscription) Cancel() {
	s.mu.Lock()
	s.canceled = true
	s.mu.Unlock()

	s.hub.remove(s.orderID, s)
}

// Hub fans message-list snapshots out to per-order subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string][]*Subscription
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string][]*Subscription),
	}
}

func (h *Hub) Subscribe(orderID string, handler Handler) *Subscription {
	sub := &Subscription{
		orderID: orderID,
		hub:     h,
		handler: handler,
	}

	h.mu.Lock()
	h.subs[orderID] = append(h.subs[orderID], sub)
	h.mu.Unlock()

	return sub
}

// Publish delivers the current snapshot to every live subscriber of the
// order. Delivery is synchronous; slow consumers should hand off to their own
// goroutine.
func (h *Hub) Publish(orderID string, messages []*entity.Message) {
	h.mu.RLock()
	subs := make([]*Subscription, len(h.subs[orderID]))
	copy(subs, h.subs[orderID])
	h.mu.RUnlock()

	for _, sub := range subs {
		sub.deliver(messages)
	}
}

func (h *Hub) remove(orderID string, sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[orderID]
	for i, s := range subs {
		if s == sub {
			h.subs[orderID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(h.subs[orderID]) == 0 {
		delete(h.subs, orderID)
	}
}
