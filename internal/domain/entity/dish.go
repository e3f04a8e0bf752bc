package entity

import "time"

type Dish struct {
	ID           string    `json:"id" firestore:"id"`
	ChefID       string    `json:"chef_id" firestore:"chefId"`
	Title        string    `json:"title" firestore:"title"`
	Description  string    `json:"description" firestore:"description"`
	Price        float64   `json:"price" firestore:"price"`
	Category     string    `json:"category" firestore:"category"` // "soup", "bakery", "main", "salad", "vegan", "other"
	PhotoURL     string    `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	AvailableQty int       `json:"available_qty" firestore:"availableQty"`
	Status       string    `json:"status" firestore:"status"` // "active", "hidden", "archived"
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}
