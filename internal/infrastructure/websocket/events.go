package websocket

import (
	"encoding/json"
	"time"

	"homefood/internal/domain/entity"
)

// WebSocket event types exchanged with clients.
const (
	EventTypePing        = "ping"
	EventTypePong        = "pong"
	EventTypeJoinOrder   = "join_order"
	EventTypeLeaveOrder  = "leave_order"
	EventTypeTyping      = "typing"
	EventTypeMessageFeed = "message_feed"
	EventTypeOrderStatus = "order_status"
	EventTypeError       = "error"
)

type Event struct {
	Type      string          `json:"type"`
	OrderID   string          `json:"order_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type TypingData struct {
	OrderID string   `json:"order_id"`
	Typing  []string `json:"typing"`
}

type OrderStatusData struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func NewEvent(eventType, orderID string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		Type:      eventType,
		OrderID:   orderID,
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// NewFeedEvent packages a full message-list snapshot for push delivery.
func NewFeedEvent(orderID string, messages []*entity.Message) ([]byte, error) {
	return NewEvent(EventTypeMessageFeed, orderID, messages)
}

func NewTypingEvent(orderID string, typing []string) ([]byte, error) {
	return NewEvent(EventTypeTyping, orderID, TypingData{OrderID: orderID, Typing: typing})
}

func NewOrderStatusEvent(orderID, status string) ([]byte, error) {
	return NewEvent(EventTypeOrderStatus, orderID, OrderStatusData{OrderID: orderID, Status: status})
}
