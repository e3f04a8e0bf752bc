package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"homefood/internal/domain/entity"
	"homefood/pkg/errors"
)

type fakeDishRepo struct {
	mu     sync.Mutex
	dishes map[string]*entity.Dish
}

func newFakeDishRepo() *fakeDishRepo {
	return &fakeDishRepo{dishes: make(map[string]*entity.Dish)}
}

func (r *fakeDishRepo) Create(ctx context.Context, dish *entity.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dish.ID == "" {
		dish.ID = fmt.Sprintf("dish-%d", len(r.dishes)+1)
	}
	now := time.Now()
	dish.CreatedAt = now
	dish.UpdatedAt = now
	copied := *dish
	r.dishes[dish.ID] = &copied
	return nil
}

func (r *fakeDishRepo) GetByID(ctx context.Context, id string) (*entity.Dish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dish, ok := r.dishes[id]
	if !ok {
		return nil, errors.NotFound("Dish", nil)
	}
	copied := *dish
	return &copied, nil
}

func (r *fakeDishRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Dish, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Dish
	for _, dish := range r.dishes {
		copied := *dish
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeDishRepo) Update(ctx context.Context, dish *entity.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dishes[dish.ID]; !ok {
		return errors.NotFound("Dish", nil)
	}
	dish.UpdatedAt = time.Now()
	copied := *dish
	r.dishes[dish.ID] = &copied
	return nil
}

type fakeOrderRepo struct {
	mu         sync.Mutex
	orders     map[string]*entity.Order
	failUpdate bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", len(r.orders)+1)
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, order := range r.orders {
		if role == "chef" && order.ChefID != userID {
			continue
		}
		if role != "chef" && order.BuyerID != userID {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		copied := *order
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errors.Internal("store unavailable", nil)
	}
	if _, ok := r.orders[order.ID]; !ok {
		return errors.NotFound("Order", nil)
	}
	order.UpdatedAt = time.Now()
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

type fakeMessageRepo struct {
	mu         sync.Mutex
	messages   map[string][]*entity.Message // orderID -> messages in arrival order
	failStatus map[string]bool              // messageID -> fail UpdateStatus
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		messages:   make(map[string][]*entity.Message),
		failStatus: make(map[string]bool),
	}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = fmt.Sprintf("msg-%d", len(r.messages[message.OrderID])+1)
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	r.messages[message.OrderID] = append(r.messages[message.OrderID], &copied)
	return nil
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, orderID, messageID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages[orderID] {
		if message.ID == messageID {
			copied := *message
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *fakeMessageRepo) ListByOrder(ctx context.Context, orderID string, limit int) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Message, 0, len(r.messages[orderID]))
	for _, message := range r.messages[orderID] {
		copied := *message
		out = append(out, &copied)
	}
	// Stable sort keeps arrival order for equal timestamps.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	// A positive limit keeps the newest messages.
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *fakeMessageRepo) UpdateStatus(ctx context.Context, orderID, messageID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failStatus[messageID] {
		return errors.Internal("store unavailable", nil)
	}
	for _, message := range r.messages[orderID] {
		if message.ID == messageID {
			message.Status = status
			now := time.Now()
			message.UpdatedAt = &now
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review // keyed by review ID
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == "" {
		review.ID = fmt.Sprintf("review-%d", len(r.reviews)+1)
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.OrderID == orderID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Review for order", nil)
}

func (r *fakeReviewRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, review := range r.reviews {
		if chefID, ok := filter["chefId"]; ok && review.ChefID != chefID {
			continue
		}
		if dishID, ok := filter["dishId"]; ok && review.DishID != dishID {
			continue
		}
		if moderated, ok := filter["moderated"]; ok && review.Moderated != moderated {
			continue
		}
		copied := *review
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	review.UpdatedAt = time.Now()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

type notification struct {
	UserID    string
	EventType string
	Payload   map[string]string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{}
}

func (n *fakeNotifier) Notify(ctx context.Context, userID, eventType string, payload map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notification{UserID: userID, EventType: eventType, Payload: payload})
}

func (n *fakeNotifier) callsFor(userID string) []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification
	for _, call := range n.calls {
		if call.UserID == userID {
			out = append(out, call)
		}
	}
	return out
}
