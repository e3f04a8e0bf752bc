package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"homefood/internal/domain/entity"
	"homefood/internal/domain/repository"
	"homefood/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}

	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user entity.User
	err := readWithRetry("get user", func() error {
		doc, err := r.client.Collection("users").Doc(id).Get(ctx)
		if err != nil {
			return err
		}
		return doc.DataTo(&user)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user.UpdatedAt = time.Now()

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}

	return nil
}
