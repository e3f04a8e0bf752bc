package repository

import (
	"context"

	"homefood/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// ListByUserID lists orders where the user participates in the given
	// role ("buyer" or "chef"), optionally filtered by status.
	ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Order, int64, error)
	Update(ctx context.Context, order *entity.Order) error
}
