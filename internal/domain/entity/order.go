package entity

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusRejected  = "rejected"
	OrderStatusReady     = "ready"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderStatusSuccessor is the forward-progress table for the order lifecycle.
// Statuses absent from the map (terminal ones) have no successor.
var OrderStatusSuccessor = map[string]string{
	OrderStatusPending:  OrderStatusAccepted,
	OrderStatusAccepted: OrderStatusReady,
	OrderStatusReady:    OrderStatusPickedUp,
	OrderStatusPickedUp: OrderStatusCompleted,
}

type Order struct {
	ID           string    `json:"id" firestore:"id"`
	DishID       string    `json:"dish_id" firestore:"dishId"`
	ChefID       string    `json:"chef_id" firestore:"chefId"`
	BuyerID      string    `json:"buyer_id" firestore:"buyerId"`
	Qty          int       `json:"qty" firestore:"qty"`
	UnitPrice    float64   `json:"unit_price" firestore:"unitPrice"`
	TotalPrice   float64   `json:"total_price" firestore:"totalPrice"`
	Note         string    `json:"note,omitempty" firestore:"note,omitempty"`
	DeliveryType string    `json:"delivery_type" firestore:"deliveryType"` // "pickup", "delivery"
	Status       string    `json:"status" firestore:"status"`
	ChatEnabled  bool      `json:"chat_enabled" firestore:"chatEnabled"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsTerminal reports whether the order can no longer change status.
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case OrderStatusCompleted, OrderStatusRejected, OrderStatusCancelled:
		return true
	}
	return false
}

// IsCancellable reports whether the cancellation window is still open.
// Once picked up, the exchange is physically committed.
func (o *Order) IsCancellable() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusReady:
		return true
	}
	return false
}

// IsParticipant reports whether userID is the order's buyer or chef.
func (o *Order) IsParticipant(userID string) bool {
	return userID == o.BuyerID || userID == o.ChefID
}
