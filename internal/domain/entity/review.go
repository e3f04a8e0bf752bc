package entity

import (
	"math"
	"time"
)

type Review struct {
	ID        string    `json:"id" firestore:"id"`
	OrderID   string    `json:"order_id" firestore:"orderId"`
	ChefID    string    `json:"chef_id" firestore:"chefId"`
	BuyerID   string    `json:"buyer_id" firestore:"buyerId"`
	DishID    string    `json:"dish_id,omitempty" firestore:"dishId,omitempty"`
	Rating    int       `json:"rating" firestore:"rating"` // 1-5
	Text      string    `json:"text" firestore:"text"`
	Photos    []string  `json:"photos,omitempty" firestore:"photos,omitempty"`
	Moderated bool      `json:"moderated" firestore:"moderated"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// RatingAggregate is derived from a review set, never stored as source of
// truth.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ComputeRating aggregates the given reviews. The average is rounded to one
// decimal place; an empty set yields {0, 0}.
func ComputeRating(reviews []*Review) RatingAggregate {
	if len(reviews) == 0 {
		return RatingAggregate{Average: 0, Count: 0}
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	average := float64(total) / float64(len(reviews))

	return RatingAggregate{
		Average: math.Round(average*10) / 10,
		Count:   len(reviews),
	}
}
