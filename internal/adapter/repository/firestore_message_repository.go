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

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) messages(orderID string) *firestore.CollectionRef {
	return r.client.Collection("orders").Doc(orderID).Collection("messages")
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.messages(message.OrderID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) GetByID(ctx context.Context, orderID, messageID string) (*entity.Message, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var message entity.Message
	err := readWithRetry("get message", func() error {
		doc, err := r.messages(orderID).Doc(messageID).Get(ctx)
		if err != nil {
			return err
		}
		return doc.DataTo(&message)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.Internal("Failed to get message", err)
	}

	return &message, nil
}

// ListByOrder returns messages in chronological order. A positive limit keeps
// the newest messages: the query runs descending with the limit and the result
// is reversed, so a long chat window never hides the latest sends. Firestore
// breaks createdAt ties by document order, which preserves arrival order for
// same-millisecond sends.
func (r *firestoreMessageRepository) ListByOrder(ctx context.Context, orderID string, limit int) ([]*entity.Message, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := r.messages(orderID).OrderBy("createdAt", firestore.Asc)
	if limit > 0 {
		query = r.messages(orderID).OrderBy("createdAt", firestore.Desc).Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	if limit > 0 {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}

	return messages, nil
}

func (r *firestoreMessageRepository) UpdateStatus(ctx context.Context, orderID, messageID, status string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	_, err := r.messages(orderID).Doc(messageID).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Message", err)
		}
		return errors.Internal("Failed to update message status", err)
	}

	return nil
}
