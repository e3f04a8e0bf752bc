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

type firestoreDishRepository struct {
	client *firestore.Client
}

func NewFirestoreDishRepository(client *firestore.Client) repository.DishRepository {
	return &firestoreDishRepository{
		client: client,
	}
}

func (r *firestoreDishRepository) Create(ctx context.Context, dish *entity.Dish) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}

	now := time.Now()
	dish.CreatedAt = now
	dish.UpdatedAt = now

	_, err := r.client.Collection("dishes").Doc(dish.ID).Set(ctx, dish)
	if err != nil {
		return errors.Internal("Failed to create dish", err)
	}

	return nil
}

func (r *firestoreDishRepository) GetByID(ctx context.Context, id string) (*entity.Dish, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var dish entity.Dish
	err := readWithRetry("get dish", func() error {
		doc, err := r.client.Collection("dishes").Doc(id).Get(ctx)
		if err != nil {
			return err
		}
		return doc.DataTo(&dish)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Dish", err)
		}
		return nil, errors.Internal("Failed to get dish", err)
	}

	return &dish, nil
}

func (r *firestoreDishRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Dish, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := r.client.Collection("dishes").Query
	for field, value := range filter {
		query = query.Where(field, "==", value)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list dishes", err)
	}
	total := int64(len(docs))

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var dishes []*entity.Dish

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate dishes", err)
		}

		var dish entity.Dish
		if err := doc.DataTo(&dish); err != nil {
			return nil, 0, errors.Internal("Failed to parse dish data", err)
		}
		dishes = append(dishes, &dish)
	}

	return dishes, total, nil
}

func (r *firestoreDishRepository) Update(ctx context.Context, dish *entity.Dish) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	dish.UpdatedAt = time.Now()

	_, err := r.client.Collection("dishes").Doc(dish.ID).Set(ctx, dish)
	if err != nil {
		return errors.Internal("Failed to update dish", err)
	}

	return nil
}
