package repository

import (
	"context"

	"homefood/internal/domain/entity"
)

type DishRepository interface {
	Create(ctx context.Context, dish *entity.Dish) error
	GetByID(ctx context.Context, id string) (*entity.Dish, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Dish, int64, error)
	Update(ctx context.Context, dish *entity.Dish) error
}
