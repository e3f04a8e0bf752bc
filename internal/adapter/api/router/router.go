package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"homefood/internal/adapter/api/handler"
	"homefood/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	dishHandler *handler.DishHandler,
	orderHandler *handler.OrderHandler,
	chatHandler *handler.ChatHandler,
	reviewHandler *handler.ReviewHandler,
	wsHandler *handler.WebSocketHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	SetupDishRouter(e, dishHandler, authMiddleware)
	SetupOrderRouter(e, orderHandler, chatHandler, reviewHandler, authMiddleware)
	SetupReviewRouter(e, reviewHandler, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, wsHandler)
}
