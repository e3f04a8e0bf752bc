package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"homefood/internal/domain/entity"
	"homefood/internal/domain/repository"
	"homefood/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var order entity.Order
	err := readWithRetry("get order", func() error {
		doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
		if err != nil {
			return err
		}
		return doc.DataTo(&order)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Order, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	field := "buyerId"
	if role == "chef" {
		field = "chefId"
	}

	query := r.client.Collection("orders").Where(field, "==", userID)
	if status != "" {
		query = query.Where("status", "==", status)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list orders", err)
	}
	total := int64(len(docs))

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var orders []*entity.Order

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, 0, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}

// Update persists the full order document in a single write, so a failed
// transition leaves the stored status unchanged.
func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	order.UpdatedAt = time.Now()

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}

	return nil
}
