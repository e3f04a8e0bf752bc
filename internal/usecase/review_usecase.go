package usecase

import (
	"context"

	"homefood/internal/domain/entity"
	"homefood/internal/domain/repository"
	"homefood/pkg/errors"
	"homefood/pkg/utils"
)

const (
	maxReviewTextLength = 1000
	maxReviewPhotos     = 5
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

type SubmitReviewInput struct {
	OrderID string
	Rating  int
	Text    string
	Photos  []string
}

// CanReview reports whether the requester may review the order: the order is
// completed, the requester is its buyer, and no review exists yet.
func (uc *ReviewUseCase) CanReview(ctx context.Context, requesterID, orderID string) (bool, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}

	if order.Status != entity.OrderStatusCompleted || requesterID != order.BuyerID {
		return false, nil
	}

	existing, err := uc.reviewRepo.GetByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return false, err
	}
	return existing == nil, nil
}

// SubmitReview creates the buyer's one review for a completed order. Reviews
// are created unmoderated and stay out of public aggregates until moderation
// flips the flag.
func (uc *ReviewUseCase) SubmitReview(ctx context.Context, buyerID string, input SubmitReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if input.Text == "" {
		return nil, errors.BadRequest("Review text cannot be empty", nil)
	}
	if len(input.Text) > maxReviewTextLength {
		return nil, errors.BadRequest("Review text is too long", nil)
	}
	if len(input.Photos) > maxReviewPhotos {
		return nil, errors.BadRequest("A review can have at most 5 photos", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if buyerID != order.BuyerID {
		return nil, errors.NotEligible("Only the order's buyer can leave a review", nil)
	}
	if order.Status != entity.OrderStatusCompleted {
		return nil, errors.NotEligible("Order must be completed before reviewing", nil)
	}

	existing, err := uc.reviewRepo.GetByOrderID(ctx, input.OrderID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Duplicate("Review for this order already exists")
	}

	review := &entity.Review{
		OrderID:   order.ID,
		ChefID:    order.ChefID,
		BuyerID:   order.BuyerID,
		DishID:    order.DishID,
		Rating:    input.Rating,
		Text:      input.Text,
		Photos:    input.Photos,
		Moderated: false,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// ListReviews lists reviews for a chef or dish. Public listings only include
// moderated reviews; includeUnmoderated is reserved for the admin surface.
func (uc *ReviewUseCase) ListReviews(ctx context.Context, chefID, dishID string, includeUnmoderated bool, page, limit int) ([]*entity.Review, int64, error) {
	filter := make(map[string]interface{})
	if chefID != "" {
		filter["chefId"] = chefID
	}
	if dishID != "" {
		filter["dishId"] = dishID
	}
	if !includeUnmoderated {
		filter["moderated"] = true
	}

	pagination := utils.NewPaginationParams(page, limit)

	return uc.reviewRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

// ChefRating computes the published aggregate for a chef from moderated
// reviews only.
func (uc *ReviewUseCase) ChefRating(ctx context.Context, chefID string) (entity.RatingAggregate, error) {
	reviews, _, err := uc.reviewRepo.List(ctx, map[string]interface{}{
		"chefId":    chefID,
		"moderated": true,
	}, 0, 0)
	if err != nil {
		return entity.RatingAggregate{}, err
	}

	return entity.ComputeRating(reviews), nil
}

// DishRating computes the published aggregate for a dish from moderated
// reviews only.
func (uc *ReviewUseCase) DishRating(ctx context.Context, dishID string) (entity.RatingAggregate, error) {
	reviews, _, err := uc.reviewRepo.List(ctx, map[string]interface{}{
		"dishId":    dishID,
		"moderated": true,
	}, 0, 0)
	if err != nil {
		return entity.RatingAggregate{}, err
	}

	return entity.ComputeRating(reviews), nil
}

// ModerateReview flips the moderation flag. Moderation itself is an external
// process; this is the thin administrative entry point it calls.
func (uc *ReviewUseCase) ModerateReview(ctx context.Context, reviewID string, moderated bool) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review.Moderated = moderated

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}
