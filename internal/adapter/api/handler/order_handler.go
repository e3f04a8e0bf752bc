package handler

import (
	"github.com/labstack/echo/v4"

	"homefood/internal/usecase"
	"homefood/pkg/errors"
	"homefood/pkg/response"
	"homefood/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type createOrderRequest struct {
	DishID       string `json:"dish_id" validate:"required"`
	Qty          int    `json:"qty" validate:"required,min=1"`
	Note         string `json:"note,omitempty" validate:"max=200"`
	DeliveryType string `json:"delivery_type" validate:"required,oneof=pickup delivery"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	order, err := h.orderUseCase.CreateOrder(c.Request().Context(), userID, usecase.CreateOrderInput{
		DishID:       req.DishID,
		Qty:          req.Qty,
		Note:         req.Note,
		DeliveryType: req.DeliveryType,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	userID := c.Get("uid").(string)

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID := c.Get("uid").(string)
	role := c.QueryParam("role")
	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListOrders(
		c.Request().Context(),
		userID,
		role,
		status,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

type updateStatusRequest struct {
	Action string `json:"action" validate:"required,oneof=next reject cancel"`
}

// UpdateStatus drives the order lifecycle. The same authorization rule is
// enforced in the usecase no matter which client surface calls this.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	ctx := c.Request().Context()

	var err error
	var order interface{}

	switch req.Action {
	case "next":
		order, err = h.orderUseCase.AdvanceStatus(ctx, userID, orderID)
	case "reject":
		order, err = h.orderUseCase.RejectOrder(ctx, userID, orderID)
	case "cancel":
		order, err = h.orderUseCase.CancelOrder(ctx, userID, orderID)
	}

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
