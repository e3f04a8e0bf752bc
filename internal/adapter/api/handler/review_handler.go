package handler

import (
	"github.com/labstack/echo/v4"

	"homefood/internal/usecase"
	"homefood/pkg/errors"
	"homefood/pkg/response"
	"homefood/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type submitReviewRequest struct {
	Rating int      `json:"rating" validate:"required,min=1,max=5"`
	Text   string   `json:"text" validate:"required,max=1000"`
	Photos []string `json:"photos,omitempty" validate:"max=5"`
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	review, err := h.reviewUseCase.SubmitReview(c.Request().Context(), userID, usecase.SubmitReviewInput{
		OrderID: orderID,
		Rating:  req.Rating,
		Text:    req.Text,
		Photos:  req.Photos,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) CanReview(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	userID := c.Get("uid").(string)

	eligible, err := h.reviewUseCase.CanReview(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"can_review": eligible})
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	chefID := c.QueryParam("chefId")
	dishID := c.QueryParam("dishId")
	if chefID == "" && dishID == "" {
		return response.Error(c, errors.BadRequest("chefId or dishId is required", nil))
	}

	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListReviews(
		c.Request().Context(),
		chefID,
		dishID,
		false,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}

func (h *ReviewHandler) ChefRating(c echo.Context) error {
	chefID := c.Param("id")
	if chefID == "" {
		return response.Error(c, errors.BadRequest("Chef ID is required", nil))
	}

	aggregate, err := h.reviewUseCase.ChefRating(c.Request().Context(), chefID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, aggregate)
}

func (h *ReviewHandler) DishRating(c echo.Context) error {
	dishID := c.Param("id")
	if dishID == "" {
		return response.Error(c, errors.BadRequest("Dish ID is required", nil))
	}

	aggregate, err := h.reviewUseCase.DishRating(c.Request().Context(), dishID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, aggregate)
}

// Admin handlers

type moderateReviewRequest struct {
	Moderated bool `json:"moderated"`
}

func (h *ReviewHandler) ModerateReview(c echo.Context) error {
	reviewID := c.Param("reviewId")
	if reviewID == "" {
		return response.Error(c, errors.BadRequest("Review ID is required", nil))
	}

	var req moderateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.ModerateReview(c.Request().Context(), reviewID, req.Moderated)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) ListAllReviews(c echo.Context) error {
	chefID := c.QueryParam("chefId")
	dishID := c.QueryParam("dishId")
	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListReviews(
		c.Request().Context(),
		chefID,
		dishID,
		true,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}
