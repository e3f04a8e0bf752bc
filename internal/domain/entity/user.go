package entity

import "time"

type User struct {
	ID             string    `json:"id" firestore:"id"`
	Email          string    `json:"email" firestore:"email"`
	DisplayName    string    `json:"display_name" firestore:"displayName"`
	Phone          string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	PhotoURL       string    `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	Role           string    `json:"role" firestore:"role"` // "buyer", "chef", "admin"
	IsApprovedChef bool      `json:"is_approved_chef" firestore:"isApprovedChef"`
	Address        string    `json:"address,omitempty" firestore:"address,omitempty"`
	PushToken      string    `json:"-" firestore:"pushToken,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}
