package usecase

import (
	"context"

	"homefood/internal/domain/entity"
	"homefood/internal/domain/repository"
	"homefood/pkg/errors"
	"homefood/pkg/utils"
)

type DishUseCase struct {
	dishRepo repository.DishRepository
	userRepo repository.UserRepository
}

func NewDishUseCase(dishRepo repository.DishRepository, userRepo repository.UserRepository) *DishUseCase {
	return &DishUseCase{
		dishRepo: dishRepo,
		userRepo: userRepo,
	}
}

type CreateDishInput struct {
	Title        string
	Description  string
	Price        float64
	Category     string
	PhotoURL     string
	AvailableQty int
}

func (uc *DishUseCase) CreateDish(ctx context.Context, chefID string, input CreateDishInput) (*entity.Dish, error) {
	chef, err := uc.userRepo.GetByID(ctx, chefID)
	if err != nil {
		return nil, err
	}
	if chef.Role != "chef" || !chef.IsApprovedChef {
		return nil, errors.NotEligible("Only approved chefs can list dishes", nil)
	}

	dish := &entity.Dish{
		ChefID:       chefID,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		PhotoURL:     input.PhotoURL,
		AvailableQty: input.AvailableQty,
		Status:       "active",
	}

	if err := uc.dishRepo.Create(ctx, dish); err != nil {
		return nil, err
	}

	return dish, nil
}

func (uc *DishUseCase) GetDish(ctx context.Context, dishID string) (*entity.Dish, error) {
	return uc.dishRepo.GetByID(ctx, dishID)
}

func (uc *DishUseCase) ListDishes(ctx context.Context, category, chefID string, page, limit int) ([]*entity.Dish, int64, error) {
	filter := map[string]interface{}{
		"status": "active",
	}
	if category != "" {
		filter["category"] = category
	}
	if chefID != "" {
		filter["chefId"] = chefID
	}

	pagination := utils.NewPaginationParams(page, limit)

	return uc.dishRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

type UpdateDishInput struct {
	Title        *string
	Description  *string
	Price        *float64
	Category     *string
	PhotoURL     *string
	AvailableQty *int
	Status       *string
}

func (uc *DishUseCase) UpdateDish(ctx context.Context, chefID, dishID string, input UpdateDishInput) (*entity.Dish, error) {
	dish, err := uc.dishRepo.GetByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish.ChefID != chefID {
		return nil, errors.Forbidden("You don't have permission to edit this dish", nil)
	}

	if input.Title != nil {
		dish.Title = *input.Title
	}
	if input.Description != nil {
		dish.Description = *input.Description
	}
	if input.Price != nil {
		dish.Price = *input.Price
	}
	if input.Category != nil {
		dish.Category = *input.Category
	}
	if input.PhotoURL != nil {
		dish.PhotoURL = *input.PhotoURL
	}
	if input.AvailableQty != nil {
		dish.AvailableQty = *input.AvailableQty
	}
	if input.Status != nil {
		dish.Status = *input.Status
	}

	if err := uc.dishRepo.Update(ctx, dish); err != nil {
		return nil, err
	}

	return dish, nil
}
