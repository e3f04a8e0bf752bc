package handler

import (
	"github.com/labstack/echo/v4"

	"homefood/internal/usecase"
	"homefood/pkg/errors"
	"homefood/pkg/response"
	"homefood/pkg/utils"
)

type DishHandler struct {
	dishUseCase *usecase.DishUseCase
}

func NewDishHandler(dishUseCase *usecase.DishUseCase) *DishHandler {
	return &DishHandler{
		dishUseCase: dishUseCase,
	}
}

type createDishRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Category     string  `json:"category" validate:"required,oneof=soup bakery main salad vegan other"`
	PhotoURL     string  `json:"photo_url,omitempty"`
	AvailableQty int     `json:"available_qty" validate:"required,min=1"`
}

func (h *DishHandler) CreateDish(c echo.Context) error {
	var req createDishRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	dish, err := h.dishUseCase.CreateDish(c.Request().Context(), userID, usecase.CreateDishInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		PhotoURL:     req.PhotoURL,
		AvailableQty: req.AvailableQty,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, dish)
}

func (h *DishHandler) GetDish(c echo.Context) error {
	dishID := c.Param("id")
	if dishID == "" {
		return response.Error(c, errors.BadRequest("Dish ID is required", nil))
	}

	dish, err := h.dishUseCase.GetDish(c.Request().Context(), dishID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dish)
}

func (h *DishHandler) ListDishes(c echo.Context) error {
	category := c.QueryParam("category")
	chefID := c.QueryParam("chefId")
	pagination := utils.GetPaginationParams(c)

	dishes, total, err := h.dishUseCase.ListDishes(
		c.Request().Context(),
		category,
		chefID,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, dishes, total, pagination.Page, pagination.PageSize)
}

type updateDishRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category     *string  `json:"category,omitempty" validate:"omitempty,oneof=soup bakery main salad vegan other"`
	PhotoURL     *string  `json:"photo_url,omitempty"`
	AvailableQty *int     `json:"available_qty,omitempty" validate:"omitempty,min=0"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=active hidden archived"`
}

func (h *DishHandler) UpdateDish(c echo.Context) error {
	dishID := c.Param("id")
	if dishID == "" {
		return response.Error(c, errors.BadRequest("Dish ID is required", nil))
	}

	var req updateDishRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	dish, err := h.dishUseCase.UpdateDish(c.Request().Context(), userID, dishID, usecase.UpdateDishInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		PhotoURL:     req.PhotoURL,
		AvailableQty: req.AvailableQty,
		Status:       req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dish)
}
