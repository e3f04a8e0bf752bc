package router

import (
	"github.com/labstack/echo/v4"

	"homefood/internal/adapter/api/handler"
	"homefood/internal/adapter/api/middleware"
)

func SetupReviewRouter(
	e *echo.Echo,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
) {
	// Public aggregates and listings (moderated reviews only)
	e.GET("/v1/reviews", reviewHandler.ListReviews)
	e.GET("/v1/chefs/:id/rating", reviewHandler.ChefRating)
	e.GET("/v1/dishes/:id/rating", reviewHandler.DishRating)

	// Moderation surface
	admin := e.Group("/v1/admin/reviews")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("", reviewHandler.ListAllReviews)
	admin.PATCH("/:reviewId", reviewHandler.ModerateReview)
}
