package entity

import "time"

const (
	MessageTypeText  = "text"
	MessageTypePhoto = "photo"
	MessageTypeAudio = "audio"

	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// messageStatusRank orders message statuses; a status may only move to a
// higher rank.
var messageStatusRank = map[string]int{
	MessageStatusSent:      0,
	MessageStatusDelivered: 1,
	MessageStatusRead:      2,
}

// IsForwardMessageStatus reports whether moving from current to next advances
// the sent -> delivered -> read progression.
func IsForwardMessageStatus(current, next string) bool {
	cur, ok := messageStatusRank[current]
	if !ok {
		return false
	}
	nxt, ok := messageStatusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

type Message struct {
	ID        string     `json:"id" firestore:"id"`
	OrderID   string     `json:"order_id" firestore:"orderId"`
	SenderID  string     `json:"sender_id" firestore:"senderId"`
	Text      string     `json:"text" firestore:"text"`
	Type      string     `json:"type" firestore:"type"`
	MediaURL  string     `json:"media_url,omitempty" firestore:"mediaUrl,omitempty"`
	Status    string     `json:"status" firestore:"status"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`
}
