package router

import (
	"github.com/labstack/echo/v4"

	"homefood/internal/adapter/api/handler"
	"homefood/internal/adapter/api/middleware"
)

// SetupOrderRouter wires order lifecycle, chat, and review-gate routes; all of
// them hang off the order resource.
func SetupOrderRouter(
	e *echo.Echo,
	orderHandler *handler.OrderHandler,
	chatHandler *handler.ChatHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.POST("", orderHandler.CreateOrder)
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.POST("/:id/status", orderHandler.UpdateStatus)

	// Order-scoped chat
	orders.GET("/:id/messages", chatHandler.GetMessages)
	orders.POST("/:id/messages", chatHandler.SendMessage)
	orders.POST("/:id/messages/read", chatHandler.MarkAllRead)

	// Review gate
	orders.GET("/:id/can-review", reviewHandler.CanReview)
	orders.POST("/:id/review", reviewHandler.SubmitReview)
}
