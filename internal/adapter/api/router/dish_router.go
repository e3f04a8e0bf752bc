package router

import (
	"github.com/labstack/echo/v4"

	"homefood/internal/adapter/api/handler"
	"homefood/internal/adapter/api/middleware"
)

func SetupDishRouter(e *echo.Echo, dishHandler *handler.DishHandler, authMiddleware *middleware.AuthMiddleware) {
	// Browsing is public
	e.GET("/v1/dishes", dishHandler.ListDishes)
	e.GET("/v1/dishes/:id", dishHandler.GetDish)

	dishes := e.Group("/v1/dishes")
	dishes.Use(authMiddleware.Authenticate)
	dishes.POST("", dishHandler.CreateDish)
	dishes.PATCH("/:id", dishHandler.UpdateDish)
}
