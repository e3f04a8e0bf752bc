package repository

import (
	"context"

	"homefood/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, orderID, messageID string) (*entity.Message, error)
	// ListByOrder returns the order's messages sorted by createdAt
	// ascending; equal timestamps keep arrival order. A positive limit
	// keeps the newest messages, not the oldest; limit <= 0 returns all.
	ListByOrder(ctx context.Context, orderID string, limit int) ([]*entity.Message, error)
	UpdateStatus(ctx context.Context, orderID, messageID, status string) error
}
