package usecase

import (
	"context"
	"fmt"

	"homefood/internal/domain/entity"
	"homefood/internal/domain/repository"
	"homefood/internal/domain/service"
	"homefood/internal/infrastructure/ratelimit"
	ws "homefood/internal/infrastructure/websocket"
	"homefood/pkg/errors"
	"homefood/pkg/logger"
	"homefood/pkg/utils"
)

const maxOrderNoteLength = 200

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	dishRepo    repository.DishRepository
	notifier    service.Notifier
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	dishRepo repository.DishRepository,
	notifier service.Notifier,
	wsManager *ws.Manager,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		dishRepo:    dishRepo,
		notifier:    notifier,
		wsManager:   wsManager,
		rateLimiter: ratelimit.NewRateLimiter(),
	}
}

type CreateOrderInput struct {
	DishID       string
	Qty          int
	Note         string
	DeliveryType string
}

func (uc *OrderUseCase) CreateOrder(ctx context.Context, buyerID string, input CreateOrderInput) (*entity.Order, error) {
	allowed, waitTime := uc.rateLimiter.Allow(buyerID, "create_order")
	if !allowed {
		logger.Warn("CreateOrder rate limited: user %s must wait %v", buyerID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before placing another order")
	}

	if input.Qty < 1 {
		return nil, errors.BadRequest("Quantity must be at least 1", nil)
	}
	if len(input.Note) > maxOrderNoteLength {
		return nil, errors.BadRequest("Note is too long", nil)
	}
	if input.DeliveryType != "pickup" && input.DeliveryType != "delivery" {
		return nil, errors.BadRequest("Invalid delivery type", nil)
	}

	dish, err := uc.dishRepo.GetByID(ctx, input.DishID)
	if err != nil {
		return nil, err
	}

	if dish.ChefID == buyerID {
		return nil, errors.BadRequest("You cannot order your own dish", nil)
	}
	if dish.Status != "active" {
		return nil, errors.BadRequest("Dish is not available", nil)
	}
	if dish.AvailableQty < input.Qty {
		return nil, errors.BadRequest("Not enough portions available", nil)
	}

	// Total price is computed once here and never recomputed, even if the
	// dish price changes later.
	order := &entity.Order{
		DishID:       dish.ID,
		ChefID:       dish.ChefID,
		BuyerID:      buyerID,
		Qty:          input.Qty,
		UnitPrice:    dish.Price,
		TotalPrice:   dish.Price * float64(input.Qty),
		Note:         input.Note,
		DeliveryType: input.DeliveryType,
		Status:       entity.OrderStatusPending,
		ChatEnabled:  true,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	dish.AvailableQty -= input.Qty
	if err := uc.dishRepo.Update(ctx, dish); err != nil {
		logger.Warn("Failed to decrement available qty for dish %s: %v", dish.ID, err)
	}

	uc.notifier.Notify(ctx, order.ChefID, "new_order", map[string]string{
		"orderId":   order.ID,
		"dishTitle": dish.Title,
	})

	return order, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsParticipant(userID) {
		return nil, errors.Forbidden("You don't have permission to view this order", nil)
	}

	return order, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, userID, role, status string, page, limit int) ([]*entity.Order, int64, error) {
	if role != "buyer" && role != "chef" {
		role = "buyer"
	}

	pagination := utils.NewPaginationParams(page, limit)

	return uc.orderRepo.ListByUserID(ctx, userID, role, status, pagination.PageSize, pagination.Offset)
}

// AdvanceStatus moves the order to its successor status. Only the order's
// chef may drive forward progress; terminal statuses have no successor and
// are rejected with the status unchanged.
func (uc *OrderUseCase) AdvanceStatus(ctx context.Context, actorID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actorID != order.ChefID {
		return nil, errors.NotEligible("Only the chef can advance the order", nil)
	}

	next, ok := entity.OrderStatusSuccessor[order.Status]
	if !ok {
		return nil, errors.NotEligible(fmt.Sprintf("Order in status %q cannot be advanced", order.Status), nil)
	}

	return uc.transition(ctx, actorID, order, next)
}

// RejectOrder declines a pending order. Chef only.
func (uc *OrderUseCase) RejectOrder(ctx context.Context, actorID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actorID != order.ChefID {
		return nil, errors.NotEligible("Only the chef can reject the order", nil)
	}
	if order.Status != entity.OrderStatusPending {
		return nil, errors.NotEligible("Only pending orders can be rejected", nil)
	}

	return uc.transition(ctx, actorID, order, entity.OrderStatusRejected)
}

// CancelOrder cancels the order on behalf of either participant. The window
// closes once the order is picked up.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, actorID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsParticipant(actorID) {
		return nil, errors.NotEligible("Only the buyer or chef can cancel the order", nil)
	}
	if !order.IsCancellable() {
		return nil, errors.NotEligible("Order can no longer be cancelled", nil)
	}

	return uc.transition(ctx, actorID, order, entity.OrderStatusCancelled)
}

// transition persists the status change and notifies the counterpart
// participant. The repo write is a single document set; on failure the stored
// status is unchanged and the error is surfaced to the caller.
func (uc *OrderUseCase) transition(ctx context.Context, actorID string, order *entity.Order, newStatus string) (*entity.Order, error) {
	previous := order.Status
	order.Status = newStatus

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		order.Status = previous
		return nil, err
	}

	uc.notifyStatusChange(ctx, actorID, order)

	return order, nil
}

func (uc *OrderUseCase) notifyStatusChange(ctx context.Context, actorID string, order *entity.Order) {
	counterpart := order.BuyerID
	if actorID == order.BuyerID {
		counterpart = order.ChefID
	}
	uc.notifier.Notify(ctx, counterpart, "status_change", map[string]string{
		"orderId": order.ID,
		"status":  order.Status,
	})

	if uc.wsManager == nil {
		return
	}
	event, err := ws.NewOrderStatusEvent(order.ID, order.Status)
	if err != nil {
		logger.Warn("Failed to encode order status event for %s: %v", order.ID, err)
		return
	}
	uc.wsManager.SendToUser(order.BuyerID, event)
	uc.wsManager.SendToUser(order.ChefID, event)
}
